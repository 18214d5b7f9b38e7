package handlers

import (
	"net/http"
	"strconv"
	"time"

	"finance-backend/internal/models"
	"finance-backend/internal/services"
	"finance-backend/internal/utils"

	pkgvalidator "finance-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TagRuleHandler struct {
	tagRuleService *services.TagRuleService
	validator      *validator.Validate
}

func NewTagRuleHandler(tagRuleService *services.TagRuleService) *TagRuleHandler {
	return &TagRuleHandler{
		tagRuleService: tagRuleService,
		validator:      pkgvalidator.GetValidator(),
	}
}

func (h *TagRuleHandler) ListRules(c *gin.Context) {
	var req models.TagRuleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	filters := models.TagRuleFilters{}
	if val := c.Query("enabled"); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid enabled filter")
			return
		}
		filters.Enabled = &enabled
	}
	if val := c.Query("tag_id"); val != "" {
		tagID, err := uuid.Parse(val)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid tag_id filter")
			return
		}
		filters.TagID = &tagID
	}

	rules, pagination, err := h.tagRuleService.ListRules(currentUserID(c), filters, req.Page, req.Limit)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"rules": rules, "pagination": pagination})
}

func (h *TagRuleHandler) GetRule(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid rule id")
		return
	}

	rule, err := h.tagRuleService.GetRule(ruleID, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, rule)
}

func (h *TagRuleHandler) CreateRule(c *gin.Context) {
	var req models.TagRuleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	rule, err := h.tagRuleService.CreateRule(currentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, rule)
}

func (h *TagRuleHandler) UpdateRule(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid rule id")
		return
	}

	var req models.TagRuleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	rule, err := h.tagRuleService.UpdateRule(ruleID, currentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "rule updated", rule)
}

func (h *TagRuleHandler) DeleteRule(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid rule id")
		return
	}

	if err := h.tagRuleService.DeleteRule(ruleID, currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "rule deleted", nil)
}

// Apply runs the caller's enabled rules over a filtered transaction set.
// Date filters are validated here; a date the service never sees cannot
// silently shrink the candidate set.
func (h *TagRuleHandler) Apply(c *gin.Context) {
	var req models.ApplyRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	opts := services.ApplyOptions{
		TransactionID: req.TransactionID,
		StatementID:   req.StatementID,
		DryRun:        req.DryRun,
	}
	if req.DateFrom != nil {
		dateFrom, err := time.Parse("2006-01-02", *req.DateFrom)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid date_from")
			return
		}
		opts.DateFrom = &dateFrom
	}
	if req.DateTo != nil {
		dateTo, err := time.Parse("2006-01-02", *req.DateTo)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid date_to")
			return
		}
		opts.DateTo = &dateTo
	}

	resp, err := h.tagRuleService.ApplyRules(currentUserID(c), opts)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, resp)
}

func (h *TagRuleHandler) ApplyToTransaction(c *gin.Context) {
	var req models.ApplyToTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	resp, err := h.tagRuleService.ApplyToTransaction(req.TransactionID, currentUserID(c), req.DryRun)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, resp)
}
