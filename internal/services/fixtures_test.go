package services

import (
	"testing"
	"time"

	"finance-backend/internal/database"
	"finance-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: "x",
		Role:         "user",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &user
}

// createTestStatement builds the card + statement chain a transaction hangs
// off of, owned by the given user.
func createTestStatement(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.CardStatement {
	t.Helper()

	card := models.CreditCard{UserID: userID, Name: "Main Card", Network: "visa", Last4: "4242"}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("create test card: %v", err)
	}

	statement := models.CardStatement{
		CardID:      card.ID,
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&statement).Error; err != nil {
		t.Fatalf("create test statement: %v", err)
	}
	return &statement
}

func createTestTransaction(t *testing.T, db *gorm.DB, statementID uuid.UUID, payee, description, amount, currency string, date time.Time) *models.Transaction {
	t.Helper()

	txn := models.Transaction{
		StatementID: statementID,
		TxnDate:     date,
		Payee:       payee,
		Description: description,
		Currency:    currency,
	}
	if amount != "" {
		txn.Amount = decPtr(t, amount)
	}
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("create test transaction: %v", err)
	}
	return &txn
}

func createTestTag(t *testing.T, db *gorm.DB, userID uuid.UUID, label string) *models.Tag {
	t.Helper()

	tag := models.Tag{UserID: userID, Label: label}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("create test tag: %v", err)
	}
	return &tag
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return &d
}

func countTransactionTags(t *testing.T, db *gorm.DB) int {
	t.Helper()

	var count int64
	if err := db.Model(&models.TransactionTag{}).Count(&count).Error; err != nil {
		t.Fatalf("count transaction tags: %v", err)
	}
	return int(count)
}
