package services

import (
	"errors"
	"testing"
	"time"

	"finance-backend/internal/models"

	"github.com/google/uuid"
)

func TestCreateExpense(t *testing.T) {
	db := testDB(t)
	service := NewExpenseService(db)

	expense, err := service.CreateExpense(&models.EntryCreateRequest{
		Date:     "2024-03-10",
		Account:  "Expenses:Groceries",
		Category: "Groceries",
		Payee:    "LIDL",
		Amount:   "18.20",
		Currency: "EUR",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if !expense.Date.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", expense.Date)
	}
	if expense.Amount.String() != "18.2" {
		t.Errorf("amount = %s", expense.Amount)
	}

	t.Run("bad amount", func(t *testing.T) {
		_, err := service.CreateExpense(&models.EntryCreateRequest{
			Date:     "2024-03-10",
			Account:  "Expenses:Groceries",
			Amount:   "not-a-number",
			Currency: "EUR",
		})
		if err == nil {
			t.Error("expected error for unparsable amount")
		}
	})
}

func TestGetExpensesFilters(t *testing.T) {
	db := testDB(t)
	service := NewExpenseService(db)

	seed := []models.EntryCreateRequest{
		{Date: "2024-03-01", Account: "Expenses:Groceries", Category: "Groceries", Payee: "LIDL", Amount: "10", Currency: "EUR"},
		{Date: "2024-03-15", Account: "Expenses:Groceries", Category: "Groceries", Payee: "Aldi Sued", Amount: "20", Currency: "EUR"},
		{Date: "2024-04-01", Account: "Expenses:Travel", Category: "Travel", Payee: "DB Bahn", Amount: "49", Currency: "EUR"},
	}
	for i := range seed {
		if _, err := service.CreateExpense(&seed[i]); err != nil {
			t.Fatalf("seed expense: %v", err)
		}
	}

	t.Run("date range", func(t *testing.T) {
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		expenses, pagination, err := service.GetExpenses(models.EntryFilters{DateFrom: &from, DateTo: &to}, 1, 50)
		if err != nil {
			t.Fatalf("GetExpenses: %v", err)
		}
		if len(expenses) != 2 || pagination.Total != 2 {
			t.Errorf("got %d results, total %d, want 2", len(expenses), pagination.Total)
		}
	})

	t.Run("payee substring is case insensitive", func(t *testing.T) {
		expenses, _, err := service.GetExpenses(models.EntryFilters{Payee: strPtr("aldi")}, 1, 50)
		if err != nil {
			t.Fatalf("GetExpenses: %v", err)
		}
		if len(expenses) != 1 || expenses[0].Payee != "Aldi Sued" {
			t.Errorf("payee filter results = %+v", expenses)
		}
	})

	t.Run("category", func(t *testing.T) {
		expenses, _, err := service.GetExpenses(models.EntryFilters{Category: strPtr("Travel")}, 1, 50)
		if err != nil {
			t.Fatalf("GetExpenses: %v", err)
		}
		if len(expenses) != 1 {
			t.Errorf("category filter results = %d, want 1", len(expenses))
		}
	})
}

func TestUpdateExpense(t *testing.T) {
	db := testDB(t)
	service := NewExpenseService(db)

	expense, err := service.CreateExpense(&models.EntryCreateRequest{
		Date:     "2024-03-10",
		Account:  "Expenses:Groceries",
		Amount:   "10",
		Currency: "EUR",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	updated, err := service.UpdateExpense(expense.ID, &models.EntryUpdateRequest{
		Amount: strPtr("12.50"),
	})
	if err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	if updated.Amount.String() != "12.5" {
		t.Errorf("amount = %s", updated.Amount)
	}
	if updated.Account != "Expenses:Groceries" {
		t.Errorf("account changed: %q", updated.Account)
	}
}

func TestDeleteExpense(t *testing.T) {
	db := testDB(t)
	service := NewExpenseService(db)

	if err := service.DeleteExpense(uuid.New()); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestExpenseSummary(t *testing.T) {
	db := testDB(t)
	service := NewExpenseService(db)

	seed := []models.EntryCreateRequest{
		{Date: "2024-03-01", Account: "a", Category: "Groceries", Amount: "10", Currency: "EUR"},
		{Date: "2024-03-15", Account: "a", Category: "Groceries", Amount: "20", Currency: "EUR"},
		{Date: "2024-03-20", Account: "a", Category: "Travel", Amount: "49", Currency: "EUR"},
		{Date: "2024-04-02", Account: "a", Category: "Groceries", Amount: "5", Currency: "USD"},
	}
	for i := range seed {
		if _, err := service.CreateExpense(&seed[i]); err != nil {
			t.Fatalf("seed expense: %v", err)
		}
	}

	t.Run("by category", func(t *testing.T) {
		rows, err := service.GetSummary(models.EntryFilters{}, "category")
		if err != nil {
			t.Fatalf("GetSummary: %v", err)
		}
		want := map[string]string{
			"Groceries/EUR": "30",
			"Groceries/USD": "5",
			"Travel/EUR":    "49",
		}
		if len(rows) != len(want) {
			t.Fatalf("rows = %d, want %d", len(rows), len(want))
		}
		for _, row := range rows {
			key := row.Group + "/" + row.Currency
			if total, ok := want[key]; !ok || row.Total.String() != total {
				t.Errorf("unexpected bucket %s total %s", key, row.Total)
			}
		}
	})

	t.Run("by month", func(t *testing.T) {
		rows, err := service.GetSummary(models.EntryFilters{}, "month")
		if err != nil {
			t.Fatalf("GetSummary: %v", err)
		}
		var march int
		for _, row := range rows {
			if row.Group == "2024-03" && row.Currency == "EUR" {
				march = row.Count
				if row.Total.String() != "79" {
					t.Errorf("march total = %s, want 79", row.Total)
				}
			}
		}
		if march != 3 {
			t.Errorf("march count = %d, want 3", march)
		}
	})
}
