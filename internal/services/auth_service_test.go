package services

import (
	"errors"
	"testing"

	"finance-backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testDB(t)
	service := NewAuthService(db)

	user, err := service.Register(&models.UserRegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != "user" || !user.IsActive {
		t.Errorf("unexpected new user state: %+v", user)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.Register(&models.UserRegisterRequest{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "another-pass",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("err = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("login ok", func(t *testing.T) {
		got, err := service.Login(&models.UserLoginRequest{Email: "alice@example.com", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("logged in as %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(&models.UserLoginRequest{Email: "alice@example.com", Password: "nope"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(&models.UserLoginRequest{Email: "ghost@example.com", Password: "whatever"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("disabled user cannot log in", func(t *testing.T) {
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error; err != nil {
			t.Fatalf("disable user: %v", err)
		}
		_, err := service.Login(&models.UserLoginRequest{Email: "alice@example.com", Password: "correct-horse"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}
