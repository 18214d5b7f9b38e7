package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"finance-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

func (s *AccountService) GetAccounts(filters models.AccountFilters, req *models.AccountListRequest) ([]models.Account, *models.Pagination, error) {
	query := s.db.Model(&models.Account{})

	if filters.Name != nil {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+*filters.Name+"%")
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Currency != nil {
		query = query.Where("currency = ?", *filters.Currency)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.ParentID != nil {
		query = query.Where("parent_id = ?", *filters.ParentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 50
	}

	orderBy := "name ASC"
	if req.Sort != "" {
		direction := "ASC"
		if req.Order == "desc" {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("%s %s", req.Sort, direction)
	}

	var accounts []models.Account
	err := query.Order(orderBy).Limit(limit).Offset((page - 1) * limit).Find(&accounts).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  page,
		Limit: limit,
		Total: int(total),
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return accounts, pagination, nil
}

func (s *AccountService) GetAccount(accountID uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := s.db.First(&account, "id = ?", accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) CreateAccount(req *models.AccountCreateRequest) (*models.Account, error) {
	account := models.Account{
		Name:     req.Name,
		Type:     req.Type,
		Currency: req.Currency,
		ParentID: req.ParentID,
		OpenFrom: time.Now().UTC().Truncate(24 * time.Hour),
		IsActive: true,
	}
	if req.OpenFrom != "" {
		openFrom, _ := time.Parse("2006-01-02", req.OpenFrom)
		account.OpenFrom = openFrom
	}
	if req.OpenTo != "" {
		openTo, _ := time.Parse("2006-01-02", req.OpenTo)
		account.OpenTo = &openTo
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if req.ParentID != nil {
		if _, err := s.GetAccount(*req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) UpdateAccount(accountID uuid.UUID, req *models.AccountUpdateRequest) (*models.Account, error) {
	account, err := s.GetAccount(accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Type != nil {
		account.Type = *req.Type
	}
	if req.Currency != nil {
		account.Currency = *req.Currency
	}
	if req.ParentID != nil {
		if _, err := s.GetAccount(*req.ParentID); err != nil {
			return nil, err
		}
		account.ParentID = req.ParentID
	}
	if req.OpenTo != nil {
		openTo, _ := time.Parse("2006-01-02", *req.OpenTo)
		account.OpenTo = &openTo
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := s.db.Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) DeleteAccount(accountID uuid.UUID) error {
	result := s.db.Where("id = ?", accountID).Delete(&models.Account{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *AccountService) GetChildren(accountID uuid.UUID) ([]models.Account, error) {
	if _, err := s.GetAccount(accountID); err != nil {
		return nil, err
	}

	var children []models.Account
	err := s.db.Where("parent_id = ?", accountID).Order("name ASC").Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}

// GetBalance sums the account's ledger entries per currency:
// incomes minus expenses, matched by account name.
func (s *AccountService) GetBalance(accountID uuid.UUID) ([]models.AccountBalance, error) {
	account, err := s.GetAccount(accountID)
	if err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := s.db.Where("account = ?", account.Name).Find(&expenses).Error; err != nil {
		return nil, err
	}
	var incomes []models.Income
	if err := s.db.Where("account = ?", account.Name).Find(&incomes).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	get := func(currency string) *bucket {
		b, ok := buckets[currency]
		if !ok {
			b = &bucket{}
			buckets[currency] = b
		}
		return b
	}

	for _, e := range expenses {
		b := get(e.Currency)
		b.expense = b.expense.Add(e.Amount)
	}
	for _, i := range incomes {
		b := get(i.Currency)
		b.income = b.income.Add(i.Amount)
	}

	currencies := make([]string, 0, len(buckets))
	for currency := range buckets {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	balances := make([]models.AccountBalance, 0, len(currencies))
	for _, currency := range currencies {
		b := buckets[currency]
		balances = append(balances, models.AccountBalance{
			Currency: currency,
			Income:   b.income,
			Expense:  b.expense,
			Balance:  b.income.Sub(b.expense),
		})
	}
	return balances, nil
}
