package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// mapean a códigos de estado; el dominio nunca expone detalle de la DB.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrAgentNotFound      = errors.New("agente no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Específicos del ciclo de vida de aplicaciones.
	ErrUnknownStage         = errors.New("etapa desconocida")
	ErrApplicationWithdrawn = errors.New("la aplicación fue retirada y no acepta cambios")
	ErrOwnerImmutable       = errors.New("un owner no puede ser desactivado")
)
