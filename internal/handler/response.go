// Package handler provides HTTP request handlers for the application.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/models"
	"github.com/vidtube/vidtube-api-go/internal/service"
	"github.com/vidtube/vidtube-api-go/internal/validation"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, models.NewApiResponse(status, data, message))
}

// respondError maps service errors onto the error envelope. Only
// unexpected failures are logged at error level; their cause stays out of
// the response.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		forbiddenErr  *service.ForbiddenError
		conflictErr   *service.ConflictError
		processingErr *service.ProcessingError
	)

	switch {
	case errors.As(err, &validationErr):
		abort(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &conflictErr):
		abort(c, http.StatusBadRequest, conflictErr.Message)
	case errors.As(err, &notFoundErr):
		abort(c, http.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &forbiddenErr):
		logger.Log.Warn("Forbidden request",
			zap.String("path", c.Request.URL.Path),
			zap.String("userId", viewer(c).String()),
		)
		abort(c, http.StatusForbidden, forbiddenErr.Message)
	case errors.As(err, &processingErr):
		logger.Log.Error("Processing error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		abort(c, http.StatusInternalServerError, "Something went wrong while processing the request")
	default:
		logger.Log.Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		abort(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func abort(c *gin.Context, status int, message string, errs ...string) {
	_ = c.Error(errors.New(message))
	c.AbortWithStatusJSON(status, models.NewApiError(status, message, errs...))
}

// bindError answers a failed request binding with 400 and the field errors.
func bindError(c *gin.Context, err error, message string) {
	logger.Log.Warn("Invalid request payload",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fe.Field()+" failed on "+fe.Tag())
		}
		abort(c, http.StatusBadRequest, message, details...)
		return
	}
	abort(c, http.StatusBadRequest, message, err.Error())
}

// pathID parses a uuid path parameter, answering 400 when malformed.
func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := validation.ParseID(param, c.Param(param))
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func pageRequest(c *gin.Context) view.PageRequest {
	return view.ParsePageRequest(c.Query("page"), c.Query("limit"))
}
