package handlers

import (
	"fmt"
	"net/http"
	"time"

	"finance-backend/internal/models"
	"finance-backend/internal/services"
	"finance-backend/internal/utils"

	pkgvalidator "finance-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
	validator      *validator.Validate
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		validator:      pkgvalidator.GetValidator(),
	}
}

// parseEntryFilters reads the ledger-entry filter query parameters shared
// by the expense and income endpoints. Malformed dates are a client error
// before any service call.
func parseEntryFilters(c *gin.Context) (models.EntryFilters, error) {
	filters := models.EntryFilters{}

	if val := c.Query("date_from"); val != "" {
		dateFrom, err := time.Parse("2006-01-02", val)
		if err != nil {
			return filters, fmt.Errorf("invalid date_from")
		}
		filters.DateFrom = &dateFrom
	}
	if val := c.Query("date_to"); val != "" {
		dateTo, err := time.Parse("2006-01-02", val)
		if err != nil {
			return filters, fmt.Errorf("invalid date_to")
		}
		filters.DateTo = &dateTo
	}
	if val := c.Query("account"); val != "" {
		filters.Account = &val
	}
	if val := c.Query("category"); val != "" {
		filters.Category = &val
	}
	if val := c.Query("payee"); val != "" {
		filters.Payee = &val
	}
	if val := c.Query("currency"); val != "" {
		filters.Currency = &val
	}
	return filters, nil
}

func summaryGroupBy(c *gin.Context) (string, error) {
	groupBy := c.DefaultQuery("group_by", "category")
	if groupBy != "category" && groupBy != "month" {
		return "", fmt.Errorf("group_by must be category or month")
	}
	return groupBy, nil
}

func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var req models.EntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	filters, err := parseEntryFilters(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	expenses, pagination, err := h.expenseService.GetExpenses(filters, req.Page, req.Limit)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"expenses": expenses, "pagination": pagination})
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid expense id")
		return
	}

	expense, err := h.expenseService.GetExpense(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, expense)
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req models.EntryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(&req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.Created(c, expense)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid expense id")
		return
	}

	var req models.EntryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, expense)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "expense deleted", nil)
}

func (h *ExpenseHandler) GetSummary(c *gin.Context) {
	filters, err := parseEntryFilters(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	groupBy, err := summaryGroupBy(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.expenseService.GetSummary(filters, groupBy)
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, rows)
}
