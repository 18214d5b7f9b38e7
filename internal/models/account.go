package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Account struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string     `json:"name" gorm:"size:255;not null;index"`
	Type     string     `json:"type" gorm:"size:50;not null;index"`
	Currency string     `json:"currency" gorm:"size:3"`
	ParentID *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	OpenFrom time.Time  `json:"open_from" gorm:"type:date"`
	OpenTo   *time.Time `json:"open_to" gorm:"type:date"`
	IsActive bool       `json:"is_active" gorm:"default:true"`

	Parent   *Account  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Account `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (Account) TableName() string {
	return "accounts"
}

type AccountCreateRequest struct {
	Name     string     `json:"name" validate:"required,max=255"`
	Type     string     `json:"type" validate:"required,max=50"`
	Currency string     `json:"currency" validate:"omitempty,currency_code"`
	ParentID *uuid.UUID `json:"parent_id"`
	OpenFrom string     `json:"open_from" validate:"omitempty,datetime=2006-01-02"`
	OpenTo   string     `json:"open_to" validate:"omitempty,datetime=2006-01-02"`
	IsActive *bool      `json:"is_active"`
}

type AccountUpdateRequest struct {
	Name     *string    `json:"name" validate:"omitempty,max=255"`
	Type     *string    `json:"type" validate:"omitempty,max=50"`
	Currency *string    `json:"currency" validate:"omitempty,currency_code"`
	ParentID *uuid.UUID `json:"parent_id"`
	OpenTo   *string    `json:"open_to" validate:"omitempty,datetime=2006-01-02"`
	IsActive *bool      `json:"is_active"`
}

// AccountFilters enumerates every supported list filter; a nil field means
// the filter is not applied.
type AccountFilters struct {
	Name     *string
	Type     *string
	Currency *string
	IsActive *bool
	ParentID *uuid.UUID
}

type AccountListRequest struct {
	Page  int    `form:"page" validate:"omitempty,min=1"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Sort  string `form:"sort" validate:"omitempty,oneof=name type open_from"`
	Order string `form:"order" validate:"omitempty,oneof=asc desc"`
}

// AccountBalance is one currency bucket of an account balance.
type AccountBalance struct {
	Currency string          `json:"currency"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Balance  decimal.Decimal `json:"balance"`
}
