package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income mirrors Expense; the two live in separate tables so summaries and
// balances never need a sign convention. Request and filter types are shared
// (see expense.go).
type Income struct {
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

func (i *Income) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (Income) TableName() string {
	return "incomes"
}
