package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNotConfigured      = errors.New("configuración de la empresa no cargada")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrTimbradoInvalid    = errors.New("timbrado inválido para facturar")
	ErrWorkOrderDelivered = errors.New("la orden de trabajo ya fue entregada")
	ErrPersistence        = errors.New("error de persistencia")
)
