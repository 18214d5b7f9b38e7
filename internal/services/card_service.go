package services

import (
	"errors"
	"math"
	"time"

	"finance-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CardService manages the ownership chain the tag-rule engine relies on:
// cards, their statements, and statement transactions. Every read is scoped
// to the requesting user's cards.
type CardService struct {
	db *gorm.DB
}

func NewCardService(db *gorm.DB) *CardService {
	return &CardService{db: db}
}

func (s *CardService) GetCards(userID uuid.UUID) ([]models.CreditCard, error) {
	var cards []models.CreditCard
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *CardService) GetCard(cardID, userID uuid.UUID) (*models.CreditCard, error) {
	var card models.CreditCard
	err := s.db.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CardService) CreateCard(userID uuid.UUID, req *models.CardCreateRequest) (*models.CreditCard, error) {
	card := models.CreditCard{
		UserID:  userID,
		Name:    req.Name,
		Network: req.Network,
		Last4:   req.Last4,
	}
	if err := s.db.Create(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CardService) DeleteCard(cardID, userID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", cardID, userID).Delete(&models.CreditCard{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (s *CardService) GetStatements(cardID, userID uuid.UUID) ([]models.CardStatement, error) {
	if _, err := s.GetCard(cardID, userID); err != nil {
		return nil, err
	}

	var statements []models.CardStatement
	err := s.db.Where("card_id = ?", cardID).Order("period_start DESC").Find(&statements).Error
	if err != nil {
		return nil, err
	}
	return statements, nil
}

func (s *CardService) CreateStatement(cardID, userID uuid.UUID, req *models.StatementCreateRequest) (*models.CardStatement, error) {
	if _, err := s.GetCard(cardID, userID); err != nil {
		return nil, err
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return nil, err
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	statement := models.CardStatement{
		CardID:      cardID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}
	if err := s.db.Create(&statement).Error; err != nil {
		return nil, err
	}
	return &statement, nil
}

func (s *CardService) getOwnedStatement(statementID, userID uuid.UUID) (*models.CardStatement, error) {
	var statement models.CardStatement
	err := s.db.Joins("JOIN credit_cards ON credit_cards.id = card_statements.card_id").
		Where("card_statements.id = ? AND credit_cards.user_id = ?", statementID, userID).
		First(&statement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStatementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &statement, nil
}

func (s *CardService) CreateTransaction(statementID, userID uuid.UUID, req *models.TransactionCreateRequest) (*models.Transaction, error) {
	if _, err := s.getOwnedStatement(statementID, userID); err != nil {
		return nil, err
	}

	txnDate, err := time.Parse("2006-01-02", req.TxnDate)
	if err != nil {
		return nil, err
	}

	txn := models.Transaction{
		StatementID: statementID,
		TxnDate:     txnDate,
		Payee:       req.Payee,
		Description: req.Description,
		Currency:    req.Currency,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return nil, err
		}
		txn.Amount = &amount
	}

	if err := s.db.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *CardService) GetTransactions(userID uuid.UUID, filters models.TransactionFilters, page, limit int) ([]models.Transaction, *models.Pagination, error) {
	query := s.db.Model(&models.Transaction{}).
		Joins("JOIN card_statements ON card_statements.id = transactions.statement_id").
		Joins("JOIN credit_cards ON credit_cards.id = card_statements.card_id").
		Where("credit_cards.user_id = ?", userID)

	if filters.StatementID != nil {
		query = query.Where("transactions.statement_id = ?", *filters.StatementID)
	}
	if filters.DateFrom != nil {
		query = query.Where("transactions.txn_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("transactions.txn_date <= ?", *filters.DateTo)
	}
	if filters.Payee != nil {
		query = query.Where("LOWER(transactions.payee) LIKE LOWER(?)", "%"+*filters.Payee+"%")
	}
	if filters.Currency != nil {
		query = query.Where("transactions.currency = ?", *filters.Currency)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var txns []models.Transaction
	err := query.Order("transactions.txn_date DESC, transactions.created_at DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&txns).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  page,
		Limit: limit,
		Total: int(total),
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return txns, pagination, nil
}

func (s *CardService) GetTransaction(transactionID, userID uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Joins("JOIN card_statements ON card_statements.id = transactions.statement_id").
		Joins("JOIN credit_cards ON credit_cards.id = card_statements.card_id").
		Where("transactions.id = ? AND credit_cards.user_id = ?", transactionID, userID).
		Preload("Tags").
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
