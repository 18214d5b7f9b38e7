package services

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"finance-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRuleService struct {
	db *gorm.DB
}

func NewTagRuleService(db *gorm.DB) *TagRuleService {
	return &TagRuleService{db: db}
}

func (s *TagRuleService) CreateRule(userID uuid.UUID, req *models.TagRuleCreateRequest) (*models.TagRule, error) {
	rule := models.TagRule{
		UserID:              userID,
		TagID:               req.TagID,
		Name:                req.Name,
		Enabled:             true,
		Priority:            100,
		PayeeContains:       req.PayeeContains,
		DescriptionContains: req.DescriptionContains,
		PayeeRegex:          req.PayeeRegex,
		DescriptionRegex:    req.DescriptionRegex,
		AmountMin:           req.AmountMin,
		AmountMax:           req.AmountMax,
		Currency:            req.Currency,
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}

	if err := validateRuleConditions(&rule); err != nil {
		return nil, err
	}

	// The target tag must belong to the rule's user
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", req.TagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	if tag.UserID != userID {
		return nil, ErrOwnership
	}

	if err := s.db.Create(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *TagRuleService) GetRule(ruleID, userID uuid.UUID) (*models.TagRule, error) {
	var rule models.TagRule
	err := s.db.Where("id = ? AND user_id = ?", ruleID, userID).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *TagRuleService) ListRules(userID uuid.UUID, filters models.TagRuleFilters, page, limit int) ([]models.TagRule, *models.Pagination, error) {
	query := s.db.Model(&models.TagRule{}).Where("user_id = ?", userID)

	if filters.Enabled != nil {
		query = query.Where("enabled = ?", *filters.Enabled)
	}
	if filters.TagID != nil {
		query = query.Where("tag_id = ?", *filters.TagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var rules []models.TagRule
	err := query.Order("priority ASC, created_at ASC").
		Limit(limit).Offset((page - 1) * limit).Find(&rules).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  page,
		Limit: limit,
		Total: int(total),
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return rules, pagination, nil
}

func (s *TagRuleService) UpdateRule(ruleID, userID uuid.UUID, req *models.TagRuleUpdateRequest) (*models.TagRule, error) {
	rule, err := s.GetRule(ruleID, userID)
	if err != nil {
		return nil, err
	}

	if req.TagID != nil {
		var tag models.Tag
		if err := s.db.First(&tag, "id = ?", *req.TagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTagNotFound
			}
			return nil, err
		}
		if tag.UserID != rule.UserID {
			return nil, ErrOwnership
		}
		rule.TagID = *req.TagID
	}

	if req.Name != nil {
		rule.Name = req.Name
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.PayeeContains != nil {
		rule.PayeeContains = req.PayeeContains
	}
	if req.DescriptionContains != nil {
		rule.DescriptionContains = req.DescriptionContains
	}
	if req.PayeeRegex != nil {
		rule.PayeeRegex = req.PayeeRegex
	}
	if req.DescriptionRegex != nil {
		rule.DescriptionRegex = req.DescriptionRegex
	}
	if req.AmountMin != nil {
		rule.AmountMin = req.AmountMin
	}
	if req.AmountMax != nil {
		rule.AmountMax = req.AmountMax
	}
	if req.Currency != nil {
		rule.Currency = req.Currency
	}

	if err := validateRuleConditions(rule); err != nil {
		return nil, err
	}

	if err := s.db.Save(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *TagRuleService) DeleteRule(ruleID, userID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", ruleID, userID).Delete(&models.TagRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagRuleNotFound
	}
	return nil
}

// validateRuleConditions rejects a rule with zero match conditions or a
// regex that does not compile, before anything reaches the database.
func validateRuleConditions(rule *models.TagRule) error {
	hasCondition := hasText(rule.PayeeContains) ||
		hasText(rule.DescriptionContains) ||
		hasText(rule.PayeeRegex) ||
		hasText(rule.DescriptionRegex) ||
		rule.AmountMin != nil ||
		rule.AmountMax != nil ||
		hasText(rule.Currency)
	if !hasCondition {
		return ErrInvalidRuleData
	}

	for _, pattern := range []*string{rule.PayeeRegex, rule.DescriptionRegex} {
		if hasText(pattern) {
			if _, err := regexp.Compile(*pattern); err != nil {
				return ErrInvalidRuleData
			}
		}
	}
	return nil
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}

// ruleMatches decides whether a single rule matches a single transaction.
// Conditions combine with AND; absent conditions are skipped. A regex that
// fails to compile here (stored data predates validation, or was corrupted)
// makes that condition non-matching instead of failing the whole run.
func ruleMatches(rule *models.TagRule, txn *models.Transaction) bool {
	if hasText(rule.PayeeContains) {
		if !strings.Contains(strings.ToLower(txn.Payee), strings.ToLower(*rule.PayeeContains)) {
			return false
		}
	}

	if hasText(rule.DescriptionContains) {
		if !strings.Contains(strings.ToLower(txn.Description), strings.ToLower(*rule.DescriptionContains)) {
			return false
		}
	}

	if hasText(rule.PayeeRegex) {
		re, err := regexp.Compile("(?i)" + *rule.PayeeRegex)
		if err != nil || !re.MatchString(txn.Payee) {
			return false
		}
	}

	if hasText(rule.DescriptionRegex) {
		re, err := regexp.Compile("(?i)" + *rule.DescriptionRegex)
		if err != nil || !re.MatchString(txn.Description) {
			return false
		}
	}

	// Bounds are inclusive; a transaction without an amount never satisfies
	// an amount condition.
	if rule.AmountMin != nil {
		if txn.Amount == nil || txn.Amount.LessThan(*rule.AmountMin) {
			return false
		}
	}
	if rule.AmountMax != nil {
		if txn.Amount == nil || txn.Amount.GreaterThan(*rule.AmountMax) {
			return false
		}
	}

	if hasText(rule.Currency) {
		if !strings.EqualFold(txn.Currency, *rule.Currency) {
			return false
		}
	}

	return true
}

// transactionBelongsToUser resolves ownership through the
// statement -> card -> user chain.
func (s *TagRuleService) transactionBelongsToUser(txn *models.Transaction, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.CreditCard{}).
		Joins("JOIN card_statements ON card_statements.card_id = credit_cards.id").
		Where("card_statements.id = ? AND credit_cards.user_id = ?", txn.StatementID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *TagRuleService) isTagged(transactionID, tagID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.TransactionTag{}).
		Where("transaction_id = ? AND tag_id = ?", transactionID, tagID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyTag creates the transaction-tag association if it does not exist.
// Returns true only when the pair is newly created. A uniqueness violation
// from a racing apply run counts as "already applied", not as an error.
func (s *TagRuleService) applyTag(transactionID, tagID uuid.UUID) (bool, error) {
	tagged, err := s.isTagged(transactionID, tagID)
	if err != nil {
		return false, err
	}
	if tagged {
		return false, nil
	}

	link := models.TransactionTag{TransactionID: transactionID, TagID: tagID}
	if err := s.db.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RulesForUser returns a user's rules ordered by priority then creation
// time. The ordering never changes which rules fire (every matching rule
// does), only the order results are reported and tags attached.
func (s *TagRuleService) RulesForUser(userID uuid.UUID, enabledOnly bool) ([]models.TagRule, error) {
	query := s.db.Where("user_id = ?", userID)
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var rules []models.TagRule
	err := query.Order("priority ASC, created_at ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// ApplyToTransaction evaluates all of the user's enabled rules against one
// transaction. Ownership is confirmed before every predicate evaluation; a
// rule can never attach a tag to another user's transaction no matter what
// its conditions say.
func (s *TagRuleService) ApplyToTransaction(transactionID, userID uuid.UUID, dryRun bool) (*models.ApplyToTransactionResponse, error) {
	var txn models.Transaction
	if err := s.db.First(&txn, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	rules, err := s.RulesForUser(userID, true)
	if err != nil {
		return nil, err
	}

	appliedTagIDs := make([]uuid.UUID, 0)
	for i := range rules {
		rule := &rules[i]

		owned, err := s.transactionBelongsToUser(&txn, userID)
		if err != nil {
			return nil, err
		}
		if !owned || !ruleMatches(rule, &txn) {
			continue
		}

		if dryRun {
			tagged, err := s.isTagged(txn.ID, rule.TagID)
			if err != nil {
				return nil, err
			}
			if !tagged {
				appliedTagIDs = append(appliedTagIDs, rule.TagID)
			}
			continue
		}

		newlyApplied, err := s.applyTag(txn.ID, rule.TagID)
		if err != nil {
			return nil, err
		}
		if newlyApplied {
			appliedTagIDs = append(appliedTagIDs, rule.TagID)
		}
	}

	return &models.ApplyToTransactionResponse{
		EvaluatedCount: 1,
		AppliedCount:   len(appliedTagIDs),
		TransactionID:  txn.ID,
		AppliedTagIDs:  appliedTagIDs,
	}, nil
}

// ApplyOptions narrows the candidate transaction set for a bulk apply.
// TransactionID takes precedence over StatementID when both are set.
type ApplyOptions struct {
	TransactionID *uuid.UUID
	StatementID   *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
	DryRun        bool
}

// ApplyRules runs the user's enabled rules over every candidate
// transaction. Ownership is enforced structurally here: the candidate query
// joins statements and cards on the acting user, which yields the same
// accept/reject outcome as the per-pair check in ApplyToTransaction.
func (s *TagRuleService) ApplyRules(userID uuid.UUID, opts ApplyOptions) (*models.ApplyRulesResponse, error) {
	query := s.db.Model(&models.Transaction{}).
		Joins("JOIN card_statements ON card_statements.id = transactions.statement_id").
		Joins("JOIN credit_cards ON credit_cards.id = card_statements.card_id").
		Where("credit_cards.user_id = ?", userID)

	if opts.TransactionID != nil {
		query = query.Where("transactions.id = ?", *opts.TransactionID)
	} else if opts.StatementID != nil {
		query = query.Where("transactions.statement_id = ?", *opts.StatementID)
	}
	if opts.DateFrom != nil {
		query = query.Where("transactions.txn_date >= ?", *opts.DateFrom)
	}
	if opts.DateTo != nil {
		query = query.Where("transactions.txn_date <= ?", *opts.DateTo)
	}

	var txns []models.Transaction
	if err := query.Order("transactions.txn_date ASC, transactions.created_at ASC").Find(&txns).Error; err != nil {
		return nil, err
	}

	rules, err := s.RulesForUser(userID, true)
	if err != nil {
		return nil, err
	}

	appliedCount := 0
	var details []models.ApplyRuleDetail

	for i := range txns {
		txn := &txns[i]
		for j := range rules {
			rule := &rules[j]
			if !ruleMatches(rule, txn) {
				continue
			}

			tagged, err := s.isTagged(txn.ID, rule.TagID)
			if err != nil {
				return nil, err
			}
			if tagged {
				continue
			}

			if opts.DryRun {
				appliedCount++
				details = append(details, models.ApplyRuleDetail{
					TransactionID: txn.ID,
					TagID:         rule.TagID,
					RuleID:        rule.ID,
				})
				continue
			}

			if _, err := s.applyTag(txn.ID, rule.TagID); err != nil {
				return nil, err
			}
			appliedCount++
		}
	}

	resp := &models.ApplyRulesResponse{
		EvaluatedCount: len(txns),
		AppliedCount:   appliedCount,
	}
	if opts.DryRun {
		resp.Details = details
	}
	return resp, nil
}
