package utils

import "errors"

var (
	ErrInvalidInput               = errors.New("invalid input")
	ErrInvalidCoordinates         = errors.New("invalid coordinates")
	ErrDatabaseError              = errors.New("database error")
	ErrEmbeddingFailed            = errors.New("embedding generation failed")
	ErrMissingUserIdentity        = errors.New("user identity missing")
	ErrPersonalizationUnavailable = errors.New("personalized scoring unavailable")
)
