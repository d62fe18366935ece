package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/application"
	"github.com/oksasatya/alc-backend/pkg/response"
	"github.com/oksasatya/alc-backend/pkg/validation"
)

type UserHandler struct {
	Svc    ProfileService
	Logger *logrus.Logger
}

func NewUserHandler(svc ProfileService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileForm struct {
	Name       string `form:"name" binding:"omitempty,max=120"`
	Occupation string `form:"occupation"`
	Password   string `form:"password"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toMemberResponse(u), "profile", nil)
}

// UpdateProfile PUT /api/profile (multipart: name, occupation, password, image)
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileForm
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	img, err := formFile(c, "image", maxAvatarBytes)
	if err != nil {
		response.Error[any](c, uploadStatus(err), "invalid image", err.Error())
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), application.UpdateProfileInput{
		Name:       req.Name,
		Occupation: req.Occupation,
		Password:   req.Password,
		Image:      img,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toMemberResponse(u), "profile updated", nil)
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchMembers(c.Request.Context(), q, size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "ok", map[string]any{"count": len(res)})
}
