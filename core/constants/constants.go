package constants

import "net/http"

// Time layouts used across the API surface.
const (
	DayLayout  = "2006-01-02"
	TimeLayout = "15:04"
)

// Database pool settings.
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Redis key prefixes.
const (
	RedisKeyTokenBlacklist = "auth:blacklist:"
)

// Asynq task types and queue names.
const (
	TaskTypeBookingEmail = "booking:email"
	QueueDefault         = "default"
)

// Owner display number: digits-only nanoid.
const (
	OwnerNumberAlphabet = "0123456789"
	OwnerNumberLength   = 6
)

// UserErrorMessages maps HTTP status codes to the localized messages shown
// to end users. Unmapped codes are a programming error.
var UserErrorMessages = map[int]string{
	http.StatusOK: "",
	http.StatusBadRequest: "Hubo un error con su solicitud. " +
		"Por favor revisela e intentelo nuevamente.",
	http.StatusInternalServerError: "Hubo un error al procesar su solicitud. " +
		"Intentelo nuevamente mas tarde.",
	http.StatusUnauthorized: "Usuario o Contraseña incorrecto.",
	http.StatusForbidden:    "No tiene permisos para realizar esta operación.",
	http.StatusNotFound:     "No se encontró el recurso solicitado.",
	http.StatusConflict:     "El recurso ya existe.",
}
