package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a credit-card statement line. The tag-rule engine only ever
// reads transactions and attaches tags; it never mutates them. Ownership is
// transitive: transaction -> statement -> card -> user.
type Transaction struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	StatementID uuid.UUID        `json:"statement_id" gorm:"type:uuid;not null;index"`
	TxnDate     time.Time        `json:"txn_date" gorm:"type:date;not null;index"`
	Payee       string           `json:"payee" gorm:"size:255;not null"`
	Description string           `json:"description" gorm:"type:text"`
	Amount      *decimal.Decimal `json:"amount" gorm:"type:numeric(18,2)"`
	Currency    string           `json:"currency" gorm:"size:3;not null"`
	CreatedAt   time.Time        `json:"created_at"`

	Statement CardStatement `json:"-" gorm:"foreignKey:StatementID"`
	Tags      []Tag         `json:"tags,omitempty" gorm:"many2many:transaction_tags;"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Transaction) TableName() string {
	return "transactions"
}

type TransactionCreateRequest struct {
	TxnDate     string  `json:"txn_date" validate:"required,datetime=2006-01-02"`
	Payee       string  `json:"payee" validate:"required,max=255"`
	Description string  `json:"description"`
	Amount      *string `json:"amount"`
	Currency    string  `json:"currency" validate:"required,currency_code"`
}

// TransactionFilters enumerates every supported transaction list filter.
// Listing is always additionally scoped to the requesting user's cards.
type TransactionFilters struct {
	StatementID *uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time
	Payee       *string
	Currency    *string
}

type TransactionListRequest struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}
