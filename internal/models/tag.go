package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag labels are unique per user, not globally; two users may both own a
// "Shopping" tag. Deleting a tag cascades to its rules and to its
// transaction associations (see DESIGN.md).
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_tags_user_label"`
	Label     string    `json:"label" gorm:"size:200;not null;uniqueIndex:idx_tags_user_label"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Tag) TableName() string {
	return "tags"
}

// TransactionTag links a transaction to a tag. The pair is unique; the
// association writer relies on that constraint to stay idempotent under
// concurrent apply runs.
type TransactionTag struct {
	TransactionID uuid.UUID `json:"transaction_id" gorm:"type:uuid;primaryKey"`
	TagID         uuid.UUID `json:"tag_id" gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
}

func (TransactionTag) TableName() string {
	return "transaction_tags"
}

type TagCreateRequest struct {
	Label string `json:"label" validate:"required,max=200"`
}

type TagUpdateRequest struct {
	Label string `json:"label" validate:"required,max=200"`
}
