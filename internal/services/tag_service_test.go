package services

import (
	"errors"
	"testing"
	"time"

	"finance-backend/internal/models"
)

func TestCreateTag(t *testing.T) {
	db := testDB(t)
	service := NewTagService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	if _, err := service.CreateTag(alice.ID, &models.TagCreateRequest{Label: "Shopping"}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	t.Run("duplicate label for same user", func(t *testing.T) {
		_, err := service.CreateTag(alice.ID, &models.TagCreateRequest{Label: "Shopping"})
		if !errors.Is(err, ErrDuplicateTagLabel) {
			t.Errorf("err = %v, want ErrDuplicateTagLabel", err)
		}
	})

	t.Run("same label for another user", func(t *testing.T) {
		if _, err := service.CreateTag(bob.ID, &models.TagCreateRequest{Label: "Shopping"}); err != nil {
			t.Errorf("CreateTag for second user: %v", err)
		}
	})
}

func TestUpdateTag(t *testing.T) {
	db := testDB(t)
	service := NewTagService(db)
	user := createTestUser(t, db, "alice@example.com")

	shopping := createTestTag(t, db, user.ID, "Shopping")
	createTestTag(t, db, user.ID, "Groceries")

	t.Run("rename to taken label", func(t *testing.T) {
		_, err := service.UpdateTag(shopping.ID, user.ID, &models.TagUpdateRequest{Label: "Groceries"})
		if !errors.Is(err, ErrDuplicateTagLabel) {
			t.Errorf("err = %v, want ErrDuplicateTagLabel", err)
		}
	})

	t.Run("rename keeping own label", func(t *testing.T) {
		tag, err := service.UpdateTag(shopping.ID, user.ID, &models.TagUpdateRequest{Label: "Shopping"})
		if err != nil {
			t.Fatalf("UpdateTag: %v", err)
		}
		if tag.Label != "Shopping" {
			t.Errorf("label = %q", tag.Label)
		}
	})
}

// Deleting a tag removes its rules and its transaction associations in the
// same transaction, so neither can dangle.
func TestDeleteTagCascades(t *testing.T) {
	db := testDB(t)
	tagService := NewTagService(db)
	ruleService := NewTagRuleService(db)
	user := createTestUser(t, db, "alice@example.com")
	tag := createTestTag(t, db, user.ID, "Shopping")

	rule, err := ruleService.CreateRule(user.ID, &models.TagRuleCreateRequest{
		TagID:         tag.ID,
		PayeeContains: strPtr("amazon"),
	})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}

	statement := createTestStatement(t, db, user.ID)
	txn := createTestTransaction(t, db, statement.ID, "AMAZON MARKETPLACE", "order", "42.50", "EUR",
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	if _, err := ruleService.ApplyToTransaction(txn.ID, user.ID, false); err != nil {
		t.Fatalf("ApplyToTransaction: %v", err)
	}
	if got := countTransactionTags(t, db); got != 1 {
		t.Fatalf("associations = %d, want 1", got)
	}

	if err := tagService.DeleteTag(tag.ID, user.ID); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	if _, err := ruleService.GetRule(rule.ID, user.ID); !errors.Is(err, ErrTagRuleNotFound) {
		t.Errorf("rule after cascade: err = %v, want ErrTagRuleNotFound", err)
	}
	if got := countTransactionTags(t, db); got != 0 {
		t.Errorf("associations after cascade = %d, want 0", got)
	}
	if _, err := tagService.GetTag(tag.ID, user.ID); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("tag after delete: err = %v, want ErrTagNotFound", err)
	}
}

func TestDeleteTagOwnership(t *testing.T) {
	db := testDB(t)
	service := NewTagService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	tag := createTestTag(t, db, alice.ID, "Shopping")

	if err := service.DeleteTag(tag.ID, bob.ID); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("err = %v, want ErrTagNotFound", err)
	}
}
