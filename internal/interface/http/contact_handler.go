package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/application"
	"github.com/oksasatya/alc-backend/pkg/response"
	"github.com/oksasatya/alc-backend/pkg/validation"
)

type ContactHandler struct {
	Svc    ContactSubmitter
	Logger *logrus.Logger
}

func NewContactHandler(svc ContactSubmitter, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactForm struct {
	Name    string `form:"name" binding:"required,max=120"`
	Email   string `form:"email" binding:"required,email"`
	Subject string `form:"subject" binding:"required,subject"`
	Message string `form:"message" binding:"required,max=5000"`
}

// Submit POST /api/contact (multipart: name, email, subject, message, file)
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactForm
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	file, err := formFile(c, "file", maxAttachmentBytes)
	if err != nil {
		response.Error[any](c, uploadStatus(err), "invalid file", err.Error())
		return
	}
	res, err := h.Svc.Submit(c.Request.Context(), application.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		File:    file,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, res.Status, nil)
}
