package service

import "errors"

var (
	// ErrMovieNotFound: el título no resuelve en el catálogo.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrInvalidPayload: falta un campo requerido o la acción no es 0/1.
	// Se rechaza antes de tocar la matriz.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrTrailerNotFound: YouTube respondió pero sin un video usable.
	ErrTrailerNotFound = errors.New("trailer not found")

	// ErrTrailerUnavailable: la API de YouTube falló o no está configurada.
	ErrTrailerUnavailable = errors.New("trailer lookup unavailable")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)
