package services

import (
	"errors"

	"finance-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) GetTags(userID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Where("user_id = ?", userID).Order("label ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) GetTag(tagID, userID uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Where("id = ? AND user_id = ?", tagID, userID).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) CreateTag(userID uuid.UUID, req *models.TagCreateRequest) (*models.Tag, error) {
	var count int64
	if err := s.db.Model(&models.Tag{}).
		Where("user_id = ? AND label = ?", userID, req.Label).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTagLabel
	}

	tag := models.Tag{
		UserID: userID,
		Label:  req.Label,
	}
	if err := s.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTagLabel
		}
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) UpdateTag(tagID, userID uuid.UUID, req *models.TagUpdateRequest) (*models.Tag, error) {
	tag, err := s.GetTag(tagID, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Tag{}).
		Where("user_id = ? AND label = ? AND id <> ?", userID, req.Label, tagID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTagLabel
	}

	tag.Label = req.Label
	if err := s.db.Save(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag together with its rules and its transaction
// associations, in one transaction (see DESIGN.md for the cascade decision).
func (s *TagService) DeleteTag(tagID, userID uuid.UUID) error {
	tag, err := s.GetTag(tagID, userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.TagRule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.TransactionTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
