package usecase

import (
	"slices"
	"testing"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

func TestValidateCompletePassportPasses(t *testing.T) {
	report := NewQualityValidator().Validate(scenarioPassportText, domain.DocPassport, true)

	if report.Status != domain.StatusPass {
		t.Fatalf("expected pass, got %s (%v)", report.Status, report.Issues)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", report.Issues)
	}
	if report.Score != 100 {
		t.Fatalf("expected score 100, got %v", report.Score)
	}
}

func TestValidateShortUnknownTextFails(t *testing.T) {
	report := NewQualityValidator().Validate("short text", domain.DocUnknown, true)

	if report.Status != domain.StatusFail {
		t.Fatalf("expected fail, got %s", report.Status)
	}
	if report.Score != 50 {
		t.Fatalf("expected score 50, got %v", report.Score)
	}
	if !slices.Equal(report.Issues, []string{IssueUnreadable}) {
		t.Fatalf("unexpected issues %v", report.Issues)
	}
}

func TestValidateBankStatementWithoutAccountOrBalanceWarns(t *testing.T) {
	report := NewQualityValidator().Validate(bankStatementNoBalanceText, domain.DocBankStatement, true)

	if report.Status != domain.StatusWarning {
		t.Fatalf("expected warning, got %s", report.Status)
	}
	if report.Score != 60 {
		t.Fatalf("expected score 60, got %v", report.Score)
	}
	want := []string{IssueAccountMissing, IssueBalanceMissing}
	if !slices.Equal(report.Issues, want) {
		t.Fatalf("expected issues %v, got %v", want, report.Issues)
	}
}

func TestValidateExpiryOnlyCheckedInStrictMode(t *testing.T) {
	text := "Name: John Smith\nDate of Birth: 01/15/1990\nPassport No: AB1234567\nRepublic of Example"
	v := NewQualityValidator()

	lenient := v.Validate(text, domain.DocPassport, false)
	if len(lenient.Issues) != 0 || lenient.Score != 100 {
		t.Fatalf("lenient mode: expected clean report, got %+v", lenient)
	}

	strict := v.Validate(text, domain.DocPassport, true)
	if !slices.Equal(strict.Issues, []string{IssueExpiryMissing}) {
		t.Fatalf("strict mode: unexpected issues %v", strict.Issues)
	}
	if strict.Score != 90 || strict.Status != domain.StatusPass {
		t.Fatalf("strict mode: expected (90, pass), got (%v, %s)", strict.Score, strict.Status)
	}
}

func TestValidateIdentityPenaltiesClampAtZero(t *testing.T) {
	// unreadable 50 + name 20 + dob 15 + number 20 + expiry 10 = 115
	report := NewQualityValidator().Validate("", domain.DocDriverLicense, true)

	if report.Score != 0 {
		t.Fatalf("expected score clamped to 0, got %v", report.Score)
	}
	want := []string{IssueUnreadable, IssueNameMissing, IssueDOBMissing, IssueDocNumberMissing, IssueExpiryMissing}
	if !slices.Equal(report.Issues, want) {
		t.Fatalf("expected issues %v, got %v", want, report.Issues)
	}
}

func TestValidateUtilityBill(t *testing.T) {
	v := NewQualityValidator()

	fresh := v.Validate(utilityBillText, domain.DocUtilityBill, true)
	if fresh.Status != domain.StatusPass || len(fresh.Issues) != 0 {
		t.Fatalf("expected clean pass, got %+v", fresh)
	}

	old := "Electricity utility bill issued for March of 2019, amount due 120.50 by end of month"
	stale := v.Validate(old, domain.DocUtilityBill, true)
	want := []string{IssueAddressMissing, IssueOutdated}
	if !slices.Equal(stale.Issues, want) {
		t.Fatalf("expected issues %v, got %v", want, stale.Issues)
	}
	if stale.Score != 60 || stale.Status != domain.StatusWarning {
		t.Fatalf("expected (60, warning), got (%v, %s)", stale.Score, stale.Status)
	}
}

func TestValidateIsMonotonicInMissingContent(t *testing.T) {
	v := NewQualityValidator()
	full := v.Validate(scenarioPassportText, domain.DocPassport, true)
	withoutNumber := v.Validate(
		"Name: John Smith\nDate of Birth: 01/15/1990\nExpiry: 01/15/2030\nRepublic of Example, passport",
		domain.DocPassport, true,
	)

	if withoutNumber.Score > full.Score {
		t.Fatalf("removing content raised the score: %v > %v", withoutNumber.Score, full.Score)
	}
	if withoutNumber.Score != 80 {
		t.Fatalf("expected score 80, got %v", withoutNumber.Score)
	}
}

func TestStatusForScoreBoundaries(t *testing.T) {
	cases := map[float64]domain.ResultStatus{
		100:  domain.StatusPass,
		80:   domain.StatusPass,
		79.9: domain.StatusWarning,
		60:   domain.StatusWarning,
		59.9: domain.StatusFail,
		0:    domain.StatusFail,
	}
	for score, want := range cases {
		if got := statusForScore(score); got != want {
			t.Fatalf("statusForScore(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestValidateUtilityBillYearMustStandAlone(t *testing.T) {
	const base = "Electricity utility bill\nFull Name: Jane Doe\nAddress: 42 Elm Street, Springfield 12345\n"
	v := NewQualityValidator()

	embedded := v.Validate(base+"Invoice INV20240315, amount due 120.50", domain.DocUtilityBill, true)
	if !slices.Equal(embedded.Issues, []string{IssueOutdated}) || embedded.Score != 90 {
		t.Fatalf("digits inside an invoice number are not a year, got %+v", embedded)
	}
	if embedded.Status != domain.StatusPass {
		t.Fatalf("expected pass at 90, got %s", embedded.Status)
	}

	standalone := v.Validate(base+"Billing period 03/2024, amount due 120.50", domain.DocUtilityBill, true)
	if len(standalone.Issues) != 0 || standalone.Score != 100 {
		t.Fatalf("expected recent year accepted, got %+v", standalone)
	}
}
