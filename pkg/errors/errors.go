package errors

import (
	"fmt"
	"net/http"
)

var (
	// Tokens.
	ErrInvalidSigningMethod = fmt.Errorf("método de firma del token no válido")
	ErrInvalidToken         = fmt.Errorf("token no válido")
	ErrTokenExpired         = fmt.Errorf("el token ha expirado")
	ErrTokenIsNotRefresh    = fmt.Errorf("el token no es un refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("el token no es un token de acceso")

	// Auth.
	ErrEmptyAuthHeader    = fmt.Errorf("falta el encabezado de autorización")
	ErrInvalidAuthHeader  = fmt.Errorf("formato de encabezado de autorización no válido")
	ErrInvalidCredentials = fmt.Errorf("credenciales incorrectas")
	ErrUnauthorized       = fmt.Errorf("no autorizado")
	ErrForbidden          = fmt.Errorf("acceso denegado")

	// Request context.
	ErrUserIDNotFoundInContext = fmt.Errorf("no se encontró el usuario en el contexto de la petición")

	// Generic.
	ErrNotFound   = fmt.Errorf("registro no encontrado")
	ErrConflict   = fmt.Errorf("el registro ya existe o fue modificado")
	ErrBadRequest = fmt.Errorf("petición no válida")
)

// HttpError carries an HTTP status and a user-facing message alongside the
// underlying cause and structured context for the logs.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewBadRequestError(message string, err error) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, err, nil)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

func NewConflictError(message string) *HttpError {
	return NewHttpError(http.StatusConflict, message, ErrConflict, nil)
}

func NewForbiddenError(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message, ErrForbidden, nil)
}
