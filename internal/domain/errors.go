package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para incluir la
// entidad que falló (producto, ítem, transacción); errors.Is sigue funcionando.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInconsistent      = errors.New("estado inconsistente")
	ErrUnavailable       = errors.New("almacenamiento no disponible")
	ErrUnauthorized      = errors.New("no autorizado")
)
