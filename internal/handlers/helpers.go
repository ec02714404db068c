package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/apperrors"
)

// Machine-readable error kinds carried in every error body.
const (
	kindBadRequest = "bad_request"
	kindValidation = "validation"
	kindNotFound   = "not_found"
	kindConflict   = "conflict"
	kindStorage    = "storage"
)

func writeError(c *gin.Context, code int, kind, detail string) {
	c.JSON(code, gin.H{"kind": kind, "detail": detail})
}

func respondBadRequest(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, kindBadRequest, err.Error())
}

// respondError is the single place domain errors map to HTTP status codes.
func respondError(c *gin.Context, err error) {
	var (
		nf *apperrors.NotFoundError
		ve *apperrors.ValidationError
		ce *apperrors.ConflictError
	)
	switch {
	case errors.As(err, &nf):
		writeError(c, http.StatusNotFound, kindNotFound, nf.Error())
	case errors.As(err, &ve):
		writeError(c, http.StatusUnprocessableEntity, kindValidation, ve.Error())
	case errors.As(err, &ce):
		writeError(c, http.StatusConflict, kindConflict, ce.Error())
	default:
		writeError(c, http.StatusInternalServerError, kindStorage, "internal error")
	}
}
