package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Date        time.Time       `json:"date" gorm:"type:date;not null;index"`
	Account     string          `json:"account" gorm:"size:255;not null;index"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Subcategory string          `json:"subcategory" gorm:"size:100"`
	Payee       string          `json:"payee" gorm:"size:255"`
	Narration   string          `json:"narration" gorm:"type:text"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(18,2);not null"`
	Currency    string          `json:"currency" gorm:"size:3;not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (Expense) TableName() string {
	return "expenses"
}

// EntryCreateRequest is shared by expenses and incomes; both are plain
// ledger entries with the same shape.
type EntryCreateRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Account     string `json:"account" validate:"required,max=255"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Subcategory string `json:"subcategory" validate:"omitempty,max=100"`
	Payee       string `json:"payee" validate:"omitempty,max=255"`
	Narration   string `json:"narration"`
	Amount      string `json:"amount" validate:"required"`
	Currency    string `json:"currency" validate:"required,currency_code"`
}

type EntryUpdateRequest struct {
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Account     *string `json:"account" validate:"omitempty,max=255"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Subcategory *string `json:"subcategory" validate:"omitempty,max=100"`
	Payee       *string `json:"payee" validate:"omitempty,max=255"`
	Narration   *string `json:"narration"`
	Amount      *string `json:"amount"`
	Currency    *string `json:"currency" validate:"omitempty,currency_code"`
}

// EntryFilters enumerates every supported ledger-entry list filter.
type EntryFilters struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Account  *string
	Category *string
	Payee    *string
	Currency *string
}

type EntryListRequest struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// EntrySummaryRow is one aggregation bucket of a ledger summary, grouped by
// category or by month, split per currency.
type EntrySummaryRow struct {
	Group    string          `json:"group"`
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}
