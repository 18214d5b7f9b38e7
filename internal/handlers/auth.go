package handlers

import (
	"net/http"

	"finance-backend/internal/config"
	"finance-backend/internal/models"
	"finance-backend/internal/services"
	"finance-backend/internal/utils"

	pkgvalidator "finance-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
	validator   *validator.Validate
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		validator:   pkgvalidator.GetValidator(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, h.cfg.JWT.Secret, h.cfg.JWT.ExpireHours)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, models.LoginResponse{Token: token, User: user})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	user, _ := c.Get("user")
	utils.Success(c, user)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, users)
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, user)
}
