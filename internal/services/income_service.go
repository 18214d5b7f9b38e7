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

type IncomeService struct {
	db *gorm.DB
}

func NewIncomeService(db *gorm.DB) *IncomeService {
	return &IncomeService{db: db}
}

func (s *IncomeService) GetIncomes(filters models.EntryFilters, page, limit int) ([]models.Income, *models.Pagination, error) {
	query := applyEntryFilters(s.db.Model(&models.Income{}), filters)

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

	var incomes []models.Income
	err := query.Order("date DESC, created_at DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&incomes).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  page,
		Limit: limit,
		Total: int(total),
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return incomes, pagination, nil
}

func (s *IncomeService) GetIncome(id uuid.UUID) (*models.Income, error) {
	var income models.Income
	err := s.db.First(&income, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (s *IncomeService) CreateIncome(req *models.EntryCreateRequest) (*models.Income, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, err
	}

	income := models.Income{
		Date:        date,
		Account:     req.Account,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Payee:       req.Payee,
		Narration:   req.Narration,
		Amount:      amount,
		Currency:    req.Currency,
	}
	if err := s.db.Create(&income).Error; err != nil {
		return nil, err
	}
	return &income, nil
}

func (s *IncomeService) UpdateIncome(id uuid.UUID, req *models.EntryUpdateRequest) (*models.Income, error) {
	income, err := s.GetIncome(id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		income.Date = date
	}
	if req.Account != nil {
		income.Account = *req.Account
	}
	if req.Category != nil {
		income.Category = *req.Category
	}
	if req.Subcategory != nil {
		income.Subcategory = *req.Subcategory
	}
	if req.Payee != nil {
		income.Payee = *req.Payee
	}
	if req.Narration != nil {
		income.Narration = *req.Narration
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return nil, err
		}
		income.Amount = amount
	}
	if req.Currency != nil {
		income.Currency = *req.Currency
	}

	if err := s.db.Save(income).Error; err != nil {
		return nil, err
	}
	return income, nil
}

func (s *IncomeService) DeleteIncome(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.Income{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *IncomeService) GetSummary(filters models.EntryFilters, groupBy string) ([]models.EntrySummaryRow, error) {
	var incomes []models.Income
	query := applyEntryFilters(s.db.Model(&models.Income{}), filters)
	if err := query.Find(&incomes).Error; err != nil {
		return nil, err
	}

	entries := make([]summaryEntry, len(incomes))
	for i, in := range incomes {
		entries[i] = summaryEntry{date: in.Date, category: in.Category, currency: in.Currency, amount: in.Amount}
	}
	return summarizeEntries(entries, groupBy), nil
}
