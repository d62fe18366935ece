package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/application"
	"github.com/oksasatya/alc-backend/pkg/response"
)

// httpStatusFor maps application errors to a status and a client-safe message.
func httpStatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrDuplicateEmail):
		return http.StatusConflict, err.Error()
	case errors.Is(err, application.ErrWeakPassword),
		errors.Is(err, application.ErrPasswordMismatch):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, application.ErrCodeMismatch),
		errors.Is(err, application.ErrNoPendingRegistration),
		errors.Is(err, application.ErrInvalidResetToken),
		errors.Is(err, application.ErrResetTokenExpired),
		errors.Is(err, application.ErrInvalidSubject),
		errors.Is(err, application.ErrInvalidOccupation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, application.ErrNotVerified):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case application.IsProviderError(err):
		return http.StatusBadGateway, "upstream service unavailable, please retry"
	}
	return http.StatusInternalServerError, "internal server error"
}

// fail writes the mapped error. Server-side failures were already logged by
// the service; unexpected ones are logged here.
func fail(c *gin.Context, log *logrus.Logger, err error) {
	status, msg := httpStatusFor(err)
	if status == http.StatusInternalServerError && log != nil {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Error[any](c, status, msg, nil)
}
