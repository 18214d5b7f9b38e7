package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditCard struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Network   string    `json:"network" gorm:"size:50"`
	Last4     string    `json:"last4" gorm:"size:4"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User       User            `json:"-" gorm:"foreignKey:UserID"`
	Statements []CardStatement `json:"statements,omitempty" gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
}

func (cc *CreditCard) BeforeCreate(tx *gorm.DB) error {
	if cc.ID == uuid.Nil {
		cc.ID = uuid.New()
	}
	return nil
}

func (CreditCard) TableName() string {
	return "credit_cards"
}

type CardStatement struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CardID      uuid.UUID `json:"card_id" gorm:"type:uuid;not null;index"`
	PeriodStart time.Time `json:"period_start" gorm:"type:date;not null"`
	PeriodEnd   time.Time `json:"period_end" gorm:"type:date;not null"`
	CreatedAt   time.Time `json:"created_at"`

	Card         CreditCard    `json:"-" gorm:"foreignKey:CardID"`
	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:StatementID;constraint:OnDelete:CASCADE"`
}

func (cs *CardStatement) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}

func (CardStatement) TableName() string {
	return "card_statements"
}

type CardCreateRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Network string `json:"network" validate:"omitempty,max=50"`
	Last4   string `json:"last4" validate:"omitempty,len=4,numeric"`
}

type StatementCreateRequest struct {
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" validate:"required,datetime=2006-01-02"`
}
