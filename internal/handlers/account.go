package handlers

import (
	"net/http"
	"strconv"

	"finance-backend/internal/models"
	"finance-backend/internal/services"
	"finance-backend/internal/utils"

	pkgvalidator "finance-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AccountHandler struct {
	accountService *services.AccountService
	validator      *validator.Validate
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		validator:      pkgvalidator.GetValidator(),
	}
}

func (h *AccountHandler) GetAccounts(c *gin.Context) {
	var req models.AccountListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	filters := models.AccountFilters{}
	if val := c.Query("name"); val != "" {
		filters.Name = &val
	}
	if val := c.Query("type"); val != "" {
		filters.Type = &val
	}
	if val := c.Query("currency"); val != "" {
		filters.Currency = &val
	}
	if val := c.Query("is_active"); val != "" {
		isActive, err := strconv.ParseBool(val)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid is_active filter")
			return
		}
		filters.IsActive = &isActive
	}
	if val := c.Query("parent_id"); val != "" {
		parentID, err := uuid.Parse(val)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid parent_id filter")
			return
		}
		filters.ParentID = &parentID
	}

	accounts, pagination, err := h.accountService.GetAccounts(filters, &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"accounts": accounts, "pagination": pagination})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid account id")
		return
	}

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, account)
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req models.AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid account id")
		return
	}

	var req models.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(accountID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, account)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := h.accountService.DeleteAccount(accountID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "account deleted", nil)
}

func (h *AccountHandler) GetChildren(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid account id")
		return
	}

	children, err := h.accountService.GetChildren(accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, children)
}

func (h *AccountHandler) GetBalance(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid account id")
		return
	}

	balances, err := h.accountService.GetBalance(accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, balances)
}
