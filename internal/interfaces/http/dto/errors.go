package dto

import "net/http"

// DomainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Codes without an entry fall back to 400.
var DomainErrorHTTPStatus = map[string]int{
	"NOT_FOUND":              http.StatusNotFound,
	"ALREADY_EXISTS":         http.StatusBadRequest,
	"USERNAME_TAKEN":         http.StatusBadRequest,
	"EMAIL_TAKEN":            http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_CREDENTIALS":    http.StatusUnauthorized,
	"UNAUTHORIZED":           http.StatusUnauthorized,
	"FORBIDDEN":              http.StatusForbidden,
	"INVALID_STATE":          http.StatusBadRequest,
	"OPTIMISTIC_LOCK_FAILED": http.StatusConflict,
	"INSUFFICIENT_STOCK":     http.StatusBadRequest,
	"INTERNAL_ERROR":         http.StatusInternalServerError,
}

// StatusForCode returns the HTTP status for a domain error code
func StatusForCode(code string) int {
	if status, ok := DomainErrorHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
