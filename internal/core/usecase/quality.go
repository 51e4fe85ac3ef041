package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

const (
	IssueUnreadable       = "Document appears to be empty or unreadable"
	IssueNameMissing      = "Name not found or not properly formatted"
	IssueDOBMissing       = "Date of birth missing"
	IssueDocNumberMissing = "Document number missing"
	IssueExpiryMissing    = "Expiry date missing"
	IssueAccountMissing   = "Account number not found"
	IssueBalanceMissing   = "Balance information missing"
	IssueAddressMissing   = "Address not found"
	IssueOutdated         = "Document may be outdated"

	minReadableChars = 50

	passThreshold    = 80.0
	warningThreshold = 60.0
)

type QualityReport struct {
	Status domain.ResultStatus
	Issues []string
	Score  float64
}

type qualityCheck struct {
	applies func(domain.DocumentType, bool) bool
	passes  func(text, lowered string) bool
	issue   string
	penalty float64
}

// Checks run in declaration order; issues keep that order.
var qualityChecks = []qualityCheck{
	{
		applies: anyType,
		passes:  func(text, _ string) bool { return utf8.RuneCountInString(strings.TrimSpace(text)) >= minReadableChars },
		issue:   IssueUnreadable,
		penalty: 50,
	},
	{applies: identityType, passes: matches(namePattern), issue: IssueNameMissing, penalty: 20},
	{applies: identityType, passes: matches(dobPattern), issue: IssueDOBMissing, penalty: 15},
	{applies: identityType, passes: matches(idNumberPattern), issue: IssueDocNumberMissing, penalty: 20},
	{
		applies: func(t domain.DocumentType, strict bool) bool { return strict && t.IsIdentity() },
		passes:  matches(expiryPattern),
		issue:   IssueExpiryMissing,
		penalty: 10,
	},
	{applies: exactType(domain.DocBankStatement), passes: matches(accountPattern), issue: IssueAccountMissing, penalty: 25},
	{
		applies: exactType(domain.DocBankStatement),
		passes:  func(_, lowered string) bool { return strings.Contains(lowered, balanceKeyword) },
		issue:   IssueBalanceMissing,
		penalty: 15,
	},
	{applies: exactType(domain.DocUtilityBill), passes: matches(addressPattern), issue: IssueAddressMissing, penalty: 30},
	{applies: exactType(domain.DocUtilityBill), passes: matches(recentYearPattern), issue: IssueOutdated, penalty: 10},
}

// QualityValidator applies fixed penalties for missing content and maps the
// remaining score to pass (>= 80), warning (>= 60) or fail.
type QualityValidator struct{}

func NewQualityValidator() *QualityValidator {
	return &QualityValidator{}
}

func (v *QualityValidator) Validate(text string, docType domain.DocumentType, strict bool) QualityReport {
	lowered := strings.ToLower(text)
	score := 100.0
	issues := make([]string, 0, 4)

	for _, check := range qualityChecks {
		if !check.applies(docType, strict) {
			continue
		}
		if check.passes(text, lowered) {
			continue
		}
		issues = append(issues, check.issue)
		score -= check.penalty
	}

	score = clampScore(score)
	return QualityReport{
		Status: statusForScore(score),
		Issues: issues,
		Score:  score,
	}
}

func statusForScore(score float64) domain.ResultStatus {
	switch {
	case score >= passThreshold:
		return domain.StatusPass
	case score >= warningThreshold:
		return domain.StatusWarning
	default:
		return domain.StatusFail
	}
}

func anyType(domain.DocumentType, bool) bool { return true }

func identityType(t domain.DocumentType, _ bool) bool { return t.IsIdentity() }

func exactType(want domain.DocumentType) func(domain.DocumentType, bool) bool {
	return func(t domain.DocumentType, _ bool) bool { return t == want }
}

func matches(pattern interface{ MatchString(string) bool }) func(string, string) bool {
	return func(text, _ string) bool { return pattern.MatchString(text) }
}
