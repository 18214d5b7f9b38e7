package handlers

import (
	"net/http"

	"finance-backend/internal/models"
	"finance-backend/internal/services"
	"finance-backend/internal/utils"

	pkgvalidator "finance-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type IncomeHandler struct {
	incomeService *services.IncomeService
	validator     *validator.Validate
}

func NewIncomeHandler(incomeService *services.IncomeService) *IncomeHandler {
	return &IncomeHandler{
		incomeService: incomeService,
		validator:     pkgvalidator.GetValidator(),
	}
}

func (h *IncomeHandler) GetIncomes(c *gin.Context) {
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

	incomes, pagination, err := h.incomeService.GetIncomes(filters, req.Page, req.Limit)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"incomes": incomes, "pagination": pagination})
}

func (h *IncomeHandler) GetIncome(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid income id")
		return
	}

	income, err := h.incomeService.GetIncome(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, income)
}

func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	var req models.EntryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	income, err := h.incomeService.CreateIncome(&req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.Created(c, income)
}

func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid income id")
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

	income, err := h.incomeService.UpdateIncome(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, income)
}

func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid income id")
		return
	}

	if err := h.incomeService.DeleteIncome(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "income deleted", nil)
}

func (h *IncomeHandler) GetSummary(c *gin.Context) {
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

	rows, err := h.incomeService.GetSummary(filters, groupBy)
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, rows)
}
