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

type CardHandler struct {
	cardService *services.CardService
	validator   *validator.Validate
}

func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		validator:   pkgvalidator.GetValidator(),
	}
}

func (h *CardHandler) GetCards(c *gin.Context) {
	cards, err := h.cardService.GetCards(currentUserID(c))
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, cards)
}

func (h *CardHandler) CreateCard(c *gin.Context) {
	var req models.CardCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	card, err := h.cardService.CreateCard(currentUserID(c), &req)
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Created(c, card)
}

func (h *CardHandler) GetCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid card id")
		return
	}

	card, err := h.cardService.GetCard(cardID, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, card)
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid card id")
		return
	}

	if err := h.cardService.DeleteCard(cardID, currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "card deleted", nil)
}

func (h *CardHandler) GetStatements(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid card id")
		return
	}

	statements, err := h.cardService.GetStatements(cardID, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, statements)
}

func (h *CardHandler) CreateStatement(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid card id")
		return
	}

	var req models.StatementCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	statement, err := h.cardService.CreateStatement(cardID, currentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, statement)
}

func (h *CardHandler) CreateTransaction(c *gin.Context) {
	statementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid statement id")
		return
	}

	var req models.TransactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	txn, err := h.cardService.CreateTransaction(statementID, currentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, txn)
}

func (h *CardHandler) GetTransactions(c *gin.Context) {
	var req models.TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	filters, err := parseTransactionFilters(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	txns, pagination, err := h.cardService.GetTransactions(currentUserID(c), filters, req.Page, req.Limit)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"transactions": txns, "pagination": pagination})
}

func (h *CardHandler) GetTransaction(c *gin.Context) {
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid transaction id")
		return
	}

	txn, err := h.cardService.GetTransaction(transactionID, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, txn)
}

func parseTransactionFilters(c *gin.Context) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{}

	if val := c.Query("statement_id"); val != "" {
		statementID, err := uuid.Parse(val)
		if err != nil {
			return filters, fmt.Errorf("invalid statement_id")
		}
		filters.StatementID = &statementID
	}
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
	if val := c.Query("payee"); val != "" {
		filters.Payee = &val
	}
	if val := c.Query("currency"); val != "" {
		filters.Currency = &val
	}
	return filters, nil
}
