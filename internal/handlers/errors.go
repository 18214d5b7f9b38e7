package handlers

import (
	"errors"
	"net/http"

	"finance-backend/internal/services"
	"finance-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondServiceError maps service sentinel errors onto HTTP responses so
// handlers stay uniform.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrStatementNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrTagRuleNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOwnership):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidRuleData):
		utils.ValidationError(c, err.Error())
	case errors.Is(err, services.ErrDuplicateTagLabel),
		errors.Is(err, services.ErrEmailTaken):
		utils.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Unauthorized(c, err.Error())
	default:
		utils.InternalError(c)
	}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	userID, _ := c.Get("user_id")
	return userID.(uuid.UUID)
}
