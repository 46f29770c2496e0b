package engine

import (
	"math"
	"testing"

	"tax-engine/internal/bands"
	"tax-engine/internal/company"
	"tax-engine/internal/model"
	"tax-engine/internal/regime"
)

func newTestEngine() *Engine {
	return New(regime.Defaults(), nil)
}

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-6 }

func TestCompareTaxMonthly(t *testing.T) {
	req := &model.TaxComparisonRequest{
		Period:      "monthly",
		GrossIncome: 250_000,
		AnnualRent:  1_200_000,
	}

	resp := newTestEngine().CompareTax(req)

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationMetadata.CalculationID == "" {
		t.Fatal("expected a calculation id")
	}
	if len(resp.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(resp.Messages))
	}

	res := resp.Result
	if res == nil {
		t.Fatal("expected a result")
	}
	if res.AnnualGrossIncome != 3_000_000 {
		t.Fatalf("expected annual gross 3000000, got %v", res.AnnualGrossIncome)
	}
	// rent is annual regardless of period
	if res.AnnualRent != 1_200_000 {
		t.Fatalf("expected annual rent 1200000, got %v", res.AnnualRent)
	}
	if !near(res.Prior.AnnualTax, 350_000) {
		t.Fatalf("expected prior tax 350000, got %v", res.Prior.AnnualTax)
	}
	if !near(res.Current.AnnualTax, 294_000) {
		t.Fatalf("expected current tax 294000, got %v", res.Current.AnnualTax)
	}
	if !near(res.Current.MonthlyTax, 24_500) {
		t.Fatalf("expected monthly current tax 24500, got %v", res.Current.MonthlyTax)
	}
	if !near(res.AnnualDifference, 56_000) || !res.Saving {
		t.Fatalf("expected a saving of 56000, got %v saving=%v", res.AnnualDifference, res.Saving)
	}
	if res.Exempt {
		t.Fatal("expected not exempt")
	}
	if res.Prior.Regime != regime.PriorName || res.Current.Regime != regime.CurrentName {
		t.Fatalf("unexpected regime names %s/%s", res.Prior.Regime, res.Current.Regime)
	}
	if len(res.Current.Bands) != 2 {
		t.Fatalf("expected 2 current bands, got %d", len(res.Current.Bands))
	}
}

func TestCompareTaxAnnualizesContributions(t *testing.T) {
	req := &model.TaxComparisonRequest{
		Period:      "monthly",
		GrossIncome: 500_000,
		Pension:     40_000,
		NHF:         12_500,
		NHIS:        7_500,
	}

	res := newTestEngine().CompareTax(req).Result
	if res.AnnualStatutoryDeductions != 720_000 {
		t.Fatalf("expected 720000 annual deductions, got %v", res.AnnualStatutoryDeductions)
	}
	want := regime.CurrentTax(6_000_000, 0, 720_000)
	if res.Current.AnnualTax != want {
		t.Fatalf("expected current tax %v, got %v", want, res.Current.AnnualTax)
	}
}

func TestCompareTaxExempt(t *testing.T) {
	req := &model.TaxComparisonRequest{Period: "yearly", GrossIncome: 800_000}

	res := newTestEngine().CompareTax(req).Result
	if !res.Exempt {
		t.Fatal("expected exempt at the threshold")
	}
	if res.Current.AnnualTax != 0 {
		t.Fatalf("expected no current tax, got %v", res.Current.AnnualTax)
	}
	// CRA of 360,000 leaves 440,000 taxed under the prior regime
	if !near(res.Prior.AnnualTax, 36_400) {
		t.Fatalf("expected prior tax 36400, got %v", res.Prior.AnnualTax)
	}
	if !res.Saving {
		t.Fatal("expected saving")
	}
}

func TestCompareTaxZeroIncomeIsNotExempt(t *testing.T) {
	resp := newTestEngine().CompareTax(&model.TaxComparisonRequest{})

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Code != model.CodeNoIncome {
		t.Fatalf("expected NO_INCOME warning, got %+v", resp.Messages)
	}
	if resp.Messages[0].Level != model.LevelWarning {
		t.Fatalf("expected WARNING, got %s", resp.Messages[0].Level)
	}
	if resp.Result.Exempt {
		t.Fatal("zero income must not be reported as exempt")
	}
}

func TestCompareTaxRejectsInvalidInput(t *testing.T) {
	req := &model.TaxComparisonRequest{
		Period:      "fortnightly",
		GrossIncome: 100_000,
		Pension:     -1,
	}

	resp := newTestEngine().CompareTax(req)

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeFailure {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.Result != nil {
		t.Fatal("expected no result on failure")
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Code != model.CodeInvalidPeriod || resp.Messages[1].Code != model.CodeInvalidAmount {
		t.Fatalf("unexpected codes: %+v", resp.Messages)
	}
	if resp.Messages[1].ID != 1 {
		t.Fatalf("expected message ids to be sequential, got %d", resp.Messages[1].ID)
	}
}

func TestCompareTaxMissingRegime(t *testing.T) {
	e := New(regime.NewSet(regime.DefaultPrior()), nil)

	resp := e.CompareTax(&model.TaxComparisonRequest{GrossIncome: 100_000})
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeFailure {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.Messages[0].Code != model.CodeUnknownRegime {
		t.Fatalf("expected UNKNOWN_REGIME, got %s", resp.Messages[0].Code)
	}
}

func TestExempt(t *testing.T) {
	cases := []struct {
		gross, tax, threshold float64
		want                  bool
	}{
		{0, 0, 800_000, false},
		{500_000, 0, 800_000, true},
		{800_000, 10, 800_000, true},
		{900_000, 0, 800_000, true},
		{900_000, 15_000, 800_000, false},
		{700_000, 30_000, 500_000, false},
	}
	for _, c := range cases {
		if got := Exempt(c.gross, c.tax, c.threshold); got != c.want {
			t.Fatalf("Exempt(%v, %v, %v): expected %v, got %v", c.gross, c.tax, c.threshold, c.want, got)
		}
	}
}

func TestCompareTaxExemptFollowsConfiguredBands(t *testing.T) {
	current := regime.Current{
		RentReliefRate: 0.20,
		RentReliefCap:  500_000,
		Table: bands.Table{
			{Width: 500_000, Rate: 0},
			{Width: bands.Unbounded, Rate: 0.15},
		},
	}
	e := New(regime.NewSet(regime.DefaultPrior(), current), nil)

	res := e.CompareTax(&model.TaxComparisonRequest{Period: "yearly", GrossIncome: 700_000}).Result
	if !near(res.Current.AnnualTax, 30_000) {
		t.Fatalf("expected current tax 30000, got %v", res.Current.AnnualTax)
	}
	if res.Exempt {
		t.Fatal("income above the configured zero-rate band must not be exempt")
	}

	res = e.CompareTax(&model.TaxComparisonRequest{Period: "yearly", GrossIncome: 500_000}).Result
	if !res.Exempt {
		t.Fatal("expected exempt inside the configured zero-rate band")
	}
}

func TestComputeTax(t *testing.T) {
	e := newTestEngine()

	resp := e.ComputeTax(regime.CurrentName, &model.RegimeTaxRequest{AnnualGross: 800_001})
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if !near(resp.Result.AnnualTax, 0.15) {
		t.Fatalf("expected 0.15, got %v", resp.Result.AnnualTax)
	}

	resp = e.ComputeTax("flat", &model.RegimeTaxRequest{AnnualGross: 1})
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeFailure {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.Messages[0].Code != model.CodeUnknownRegime {
		t.Fatalf("expected UNKNOWN_REGIME, got %s", resp.Messages[0].Code)
	}
}

func TestClassifyCompany(t *testing.T) {
	e := newTestEngine()

	resp := e.ClassifyCompany(&model.CompanyClassificationRequest{
		Turnover:         50_000_000,
		TotalFixedAssets: 250_000_000,
		Sector:           "general",
	})
	if !resp.Result.SmallCompany {
		t.Fatal("expected small company at both limits")
	}
	if len(resp.Result.FailedCriteria) != 0 {
		t.Fatalf("expected no failed criteria, got %v", resp.Result.FailedCriteria)
	}

	resp = e.ClassifyCompany(&model.CompanyClassificationRequest{
		Turnover: 1_000_000,
		Sector:   "professional",
	})
	if resp.Result.SmallCompany {
		t.Fatal("professional services must not be a small company")
	}
	if len(resp.Result.FailedCriteria) != 1 || resp.Result.FailedCriteria[0] != company.CriterionSector {
		t.Fatalf("expected sector criterion, got %v", resp.Result.FailedCriteria)
	}
	if len(resp.Result.Liabilities) != 3 {
		t.Fatalf("expected standard liabilities, got %d", len(resp.Result.Liabilities))
	}
}

func TestClassifyCompanyWarningsAndFailures(t *testing.T) {
	e := newTestEngine()

	resp := e.ClassifyCompany(&model.CompanyClassificationRequest{Sector: "oil"})
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Code != model.CodeNoTurnover {
		t.Fatalf("expected NO_TURNOVER warning, got %+v", resp.Messages)
	}

	resp = e.ClassifyCompany(&model.CompanyClassificationRequest{Turnover: -5, Sector: "banking"})
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeFailure {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.Messages) != 2 || resp.Messages[0].Code != model.CodeUnknownSector {
		t.Fatalf("unexpected messages: %+v", resp.Messages)
	}
}
