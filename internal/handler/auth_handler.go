package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maelin-io/timetable-api/internal/dto"
	"github.com/maelin-io/timetable-api/internal/service"
	appErrors "github.com/maelin-io/timetable-api/pkg/errors"
	"github.com/maelin-io/timetable-api/pkg/response"
)

type authenticator interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthHandler exposes the admin login endpoint.
type AuthHandler struct {
	service authenticator
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Authenticate the admin account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	result, err := h.service.Login(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
