package services

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrAccountNotFound     = errors.New("account not found")
	ErrEntryNotFound       = errors.New("ledger entry not found")
	ErrCardNotFound        = errors.New("card not found")
	ErrStatementNotFound   = errors.New("statement not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrTagNotFound       = errors.New("tag not found")
	ErrDuplicateTagLabel = errors.New("tag label already exists for this user")

	ErrTagRuleNotFound = errors.New("tag rule not found")
	// ErrInvalidRuleData covers a rule with zero match conditions or a regex
	// that does not compile; raised before anything is persisted.
	ErrInvalidRuleData = errors.New("invalid tag rule data")
	// ErrOwnership is returned when a referenced entity belongs to a
	// different user than the one acting.
	ErrOwnership = errors.New("entity belongs to a different user")
)
