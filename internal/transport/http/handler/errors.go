package handler

import (
	"github.com/gin-gonic/gin"
)

// Stable machine-readable reason codes. The messages next to them are for
// humans; clients should branch on the code.
const (
	codeValidation    = "validation_error"
	codeDuplicate     = "duplicate_account"
	codeBadCredential = "invalid_credentials"
	codeNotFound      = "not_found"
	codeInternal      = "internal_error"
)

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid email or password"
	errDuplicateAccount   = "Account with this email already exists"
	errMovieNotFound      = "Movie not found"
)

func errorBody(code, message string) gin.H {
	return gin.H{"code": code, "error": message}
}
