package services

import (
	"errors"
	"testing"

	"finance-backend/internal/models"

	"github.com/google/uuid"
)

func TestCreateAccountHierarchy(t *testing.T) {
	db := testDB(t)
	service := NewAccountService(db)

	parent, err := service.CreateAccount(&models.AccountCreateRequest{
		Name:     "Expenses",
		Type:     "expense",
		Currency: "EUR",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if !parent.IsActive {
		t.Error("new account should be active by default")
	}

	child, err := service.CreateAccount(&models.AccountCreateRequest{
		Name:     "Expenses:Groceries",
		Type:     "expense",
		Currency: "EUR",
		ParentID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("CreateAccount child: %v", err)
	}

	t.Run("unknown parent rejected", func(t *testing.T) {
		bogus := uuid.New()
		_, err := service.CreateAccount(&models.AccountCreateRequest{
			Name:     "Orphan",
			Type:     "expense",
			ParentID: &bogus,
		})
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("err = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("children listing", func(t *testing.T) {
		children, err := service.GetChildren(parent.ID)
		if err != nil {
			t.Fatalf("GetChildren: %v", err)
		}
		if len(children) != 1 || children[0].ID != child.ID {
			t.Errorf("children = %+v", children)
		}
	})
}

func TestAccountBalance(t *testing.T) {
	db := testDB(t)
	accountService := NewAccountService(db)
	expenseService := NewExpenseService(db)
	incomeService := NewIncomeService(db)

	account, err := accountService.CreateAccount(&models.AccountCreateRequest{
		Name:     "Assets:Checking",
		Type:     "asset",
		Currency: "EUR",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if _, err := incomeService.CreateIncome(&models.EntryCreateRequest{
		Date: "2024-03-01", Account: "Assets:Checking", Amount: "1000", Currency: "EUR",
	}); err != nil {
		t.Fatalf("CreateIncome: %v", err)
	}
	if _, err := expenseService.CreateExpense(&models.EntryCreateRequest{
		Date: "2024-03-05", Account: "Assets:Checking", Amount: "250.50", Currency: "EUR",
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if _, err := expenseService.CreateExpense(&models.EntryCreateRequest{
		Date: "2024-03-06", Account: "Assets:Checking", Amount: "30", Currency: "USD",
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	balances, err := accountService.GetBalance(account.ID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("balances = %d currencies, want 2", len(balances))
	}

	// Sorted by currency: EUR before USD
	if balances[0].Currency != "EUR" || balances[0].Balance.String() != "749.5" {
		t.Errorf("EUR balance = %+v", balances[0])
	}
	if balances[1].Currency != "USD" || balances[1].Balance.String() != "-30" {
		t.Errorf("USD balance = %+v", balances[1])
	}
}

func TestGetAccountsFilters(t *testing.T) {
	db := testDB(t)
	service := NewAccountService(db)

	if _, err := service.CreateAccount(&models.AccountCreateRequest{Name: "Assets:Checking", Type: "asset", Currency: "EUR"}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	inactive := false
	if _, err := service.CreateAccount(&models.AccountCreateRequest{Name: "Assets:Old", Type: "asset", Currency: "EUR", IsActive: &inactive}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := service.CreateAccount(&models.AccountCreateRequest{Name: "Expenses:Food", Type: "expense", Currency: "EUR"}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	t.Run("name substring case insensitive", func(t *testing.T) {
		accounts, _, err := service.GetAccounts(models.AccountFilters{Name: strPtr("checking")}, &models.AccountListRequest{})
		if err != nil {
			t.Fatalf("GetAccounts: %v", err)
		}
		if len(accounts) != 1 {
			t.Errorf("name filter results = %d, want 1", len(accounts))
		}
	})

	t.Run("type and active", func(t *testing.T) {
		active := true
		accounts, pagination, err := service.GetAccounts(
			models.AccountFilters{Type: strPtr("asset"), IsActive: &active},
			&models.AccountListRequest{})
		if err != nil {
			t.Fatalf("GetAccounts: %v", err)
		}
		if pagination.Total != 1 || len(accounts) != 1 {
			t.Errorf("filtered = %d (total %d), want 1", len(accounts), pagination.Total)
		}
	})
}

func TestUpdateAccount(t *testing.T) {
	db := testDB(t)
	service := NewAccountService(db)

	account, err := service.CreateAccount(&models.AccountCreateRequest{Name: "Assets:Checking", Type: "asset", Currency: "EUR"})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	inactive := false
	updated, err := service.UpdateAccount(account.ID, &models.AccountUpdateRequest{
		IsActive: &inactive,
		OpenTo:   strPtr("2024-12-31"),
	})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if updated.IsActive {
		t.Error("account should be inactive")
	}
	if updated.OpenTo == nil {
		t.Error("open_to should be set")
	}
	if updated.Name != "Assets:Checking" {
		t.Errorf("name changed: %q", updated.Name)
	}
}

func TestDeleteAccount(t *testing.T) {
	db := testDB(t)
	service := NewAccountService(db)

	if err := service.DeleteAccount(uuid.New()); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("err = %v, want ErrAccountNotFound", err)
	}
}
