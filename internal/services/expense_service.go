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

type ExpenseService struct {
	db *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

func applyEntryFilters(query *gorm.DB, filters models.EntryFilters) *gorm.DB {
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}
	if filters.Account != nil {
		query = query.Where("account = ?", *filters.Account)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Payee != nil {
		query = query.Where("LOWER(payee) LIKE LOWER(?)", "%"+*filters.Payee+"%")
	}
	if filters.Currency != nil {
		query = query.Where("currency = ?", *filters.Currency)
	}
	return query
}

func (s *ExpenseService) GetExpenses(filters models.EntryFilters, page, limit int) ([]models.Expense, *models.Pagination, error) {
	query := applyEntryFilters(s.db.Model(&models.Expense{}), filters)

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

	var expenses []models.Expense
	err := query.Order("date DESC, created_at DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&expenses).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  page,
		Limit: limit,
		Total: int(total),
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return expenses, pagination, nil
}

func (s *ExpenseService) GetExpense(id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseService) CreateExpense(req *models.EntryCreateRequest) (*models.Expense, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		Date:        date,
		Account:     req.Account,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Payee:       req.Payee,
		Narration:   req.Narration,
		Amount:      amount,
		Currency:    req.Currency,
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseService) UpdateExpense(id uuid.UUID, req *models.EntryUpdateRequest) (*models.Expense, error) {
	expense, err := s.GetExpense(id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		expense.Date = date
	}
	if req.Account != nil {
		expense.Account = *req.Account
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Subcategory != nil {
		expense.Subcategory = *req.Subcategory
	}
	if req.Payee != nil {
		expense.Payee = *req.Payee
	}
	if req.Narration != nil {
		expense.Narration = *req.Narration
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return nil, err
		}
		expense.Amount = amount
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// GetSummary aggregates filtered expenses into per-currency buckets grouped
// by category or by month (YYYY-MM).
func (s *ExpenseService) GetSummary(filters models.EntryFilters, groupBy string) ([]models.EntrySummaryRow, error) {
	var expenses []models.Expense
	query := applyEntryFilters(s.db.Model(&models.Expense{}), filters)
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}

	entries := make([]summaryEntry, len(expenses))
	for i, e := range expenses {
		entries[i] = summaryEntry{date: e.Date, category: e.Category, currency: e.Currency, amount: e.Amount}
	}
	return summarizeEntries(entries, groupBy), nil
}
