package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TagRule is a user-owned predicate over transaction fields. All non-nil
// match fields must hold for a rule to match (AND semantics); at least one
// must be set, enforced at create/update time. Lower priority runs first.
type TagRule struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	TagID    uuid.UUID `json:"tag_id" gorm:"type:uuid;not null;index"`
	Name     *string   `json:"name" gorm:"size:200"`
	Enabled  bool      `json:"enabled" gorm:"default:true"`
	Priority int       `json:"priority" gorm:"default:100"`

	PayeeContains       *string          `json:"payee_contains" gorm:"size:200"`
	DescriptionContains *string          `json:"description_contains" gorm:"size:500"`
	PayeeRegex          *string          `json:"payee_regex" gorm:"size:500"`
	DescriptionRegex    *string          `json:"description_regex" gorm:"size:500"`
	AmountMin           *decimal.Decimal `json:"amount_min" gorm:"type:numeric(18,2)"`
	AmountMax           *decimal.Decimal `json:"amount_max" gorm:"type:numeric(18,2)"`
	Currency            *string          `json:"currency" gorm:"size:3"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Tag  Tag  `json:"-" gorm:"foreignKey:TagID"`
}

func (r *TagRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (TagRule) TableName() string {
	return "tag_rules"
}

type TagRuleCreateRequest struct {
	TagID    uuid.UUID `json:"tag_id" validate:"required"`
	Name     *string   `json:"name" validate:"omitempty,max=200"`
	Enabled  *bool     `json:"enabled"`
	Priority *int      `json:"priority"`

	PayeeContains       *string          `json:"payee_contains" validate:"omitempty,max=200"`
	DescriptionContains *string          `json:"description_contains" validate:"omitempty,max=500"`
	PayeeRegex          *string          `json:"payee_regex" validate:"omitempty,max=500"`
	DescriptionRegex    *string          `json:"description_regex" validate:"omitempty,max=500"`
	AmountMin           *decimal.Decimal `json:"amount_min"`
	AmountMax           *decimal.Decimal `json:"amount_max"`
	Currency            *string          `json:"currency" validate:"omitempty,currency_code"`
}

// TagRuleUpdateRequest updates only the fields that are present; a nil
// pointer leaves the stored value untouched.
type TagRuleUpdateRequest struct {
	TagID    *uuid.UUID `json:"tag_id"`
	Name     *string    `json:"name" validate:"omitempty,max=200"`
	Enabled  *bool      `json:"enabled"`
	Priority *int       `json:"priority"`

	PayeeContains       *string          `json:"payee_contains" validate:"omitempty,max=200"`
	DescriptionContains *string          `json:"description_contains" validate:"omitempty,max=500"`
	PayeeRegex          *string          `json:"payee_regex" validate:"omitempty,max=500"`
	DescriptionRegex    *string          `json:"description_regex" validate:"omitempty,max=500"`
	AmountMin           *decimal.Decimal `json:"amount_min"`
	AmountMax           *decimal.Decimal `json:"amount_max"`
	Currency            *string          `json:"currency" validate:"omitempty,currency_code"`
}

// TagRuleFilters enumerates every supported rule list filter.
type TagRuleFilters struct {
	Enabled *bool
	TagID   *uuid.UUID
}

type TagRuleListRequest struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

type ApplyRulesRequest struct {
	TransactionID *uuid.UUID `json:"transaction_id"`
	StatementID   *uuid.UUID `json:"statement_id"`
	DateFrom      *string    `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo        *string    `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	DryRun        bool       `json:"dry_run"`
}

// ApplyRuleDetail reports one would-be association in a dry run.
type ApplyRuleDetail struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	TagID         uuid.UUID `json:"tag_id"`
	RuleID        uuid.UUID `json:"rule_id"`
}

type ApplyRulesResponse struct {
	EvaluatedCount int               `json:"evaluated_count"`
	AppliedCount   int               `json:"applied_count"`
	Details        []ApplyRuleDetail `json:"details,omitempty"`
}

type ApplyToTransactionRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
	DryRun        bool      `json:"dry_run"`
}

type ApplyToTransactionResponse struct {
	EvaluatedCount int         `json:"evaluated_count"`
	AppliedCount   int         `json:"applied_count"`
	TransactionID  uuid.UUID   `json:"transaction_id"`
	AppliedTagIDs  []uuid.UUID `json:"applied_tag_ids"`
}
