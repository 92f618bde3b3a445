package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
	ErrEmptyOrder            = errors.New("la orden de compra no tiene ítems")
	ErrDuplicateCode         = errors.New("el código de categoría ya existe")
	ErrDuplicateAttribute    = errors.New("el atributo ya existe en la categoría")
	ErrHasChildren           = errors.New("la categoría tiene subcategorías")
	ErrCorruptHierarchy      = errors.New("jerarquía de categorías corrupta")
)
