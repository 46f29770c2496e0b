package model

import "tax-engine/internal/company"

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type BandCharge struct {
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
	Tax    float64 `json:"tax"`
}

type RegimeResult struct {
	Regime        string       `json:"regime"`
	Relief        float64      `json:"relief"`
	Deductions    float64      `json:"statutory_deductions"`
	TaxableIncome float64      `json:"taxable_income"`
	AnnualTax     float64      `json:"annual_tax"`
	MonthlyTax    float64      `json:"monthly_tax"`
	Bands         []BandCharge `json:"bands"`
}

type TaxComparison struct {
	AnnualGrossIncome         float64      `json:"annual_gross_income"`
	AnnualRent                float64      `json:"annual_rent"`
	AnnualStatutoryDeductions float64      `json:"annual_statutory_deductions"`
	Prior                     RegimeResult `json:"prior"`
	Current                   RegimeResult `json:"current"`
	// AnnualDifference is prior minus current tax; positive means a saving.
	AnnualDifference  float64 `json:"annual_difference"`
	MonthlyDifference float64 `json:"monthly_difference"`
	Saving            bool    `json:"saving"`
	Exempt            bool    `json:"exempt"`
}

type TaxComparisonResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	Messages            []CalculationMessage `json:"messages"`
	Result              *TaxComparison       `json:"result"`
}

type RegimeTaxResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	Messages            []CalculationMessage `json:"messages"`
	Result              *RegimeResult        `json:"result"`
}

type CompanyClassification struct {
	SmallCompany        bool                `json:"small_company"`
	HasTurnover         bool                `json:"has_turnover"`
	TurnoverWithinLimit bool                `json:"turnover_within_limit"`
	AssetsWithinLimit   bool                `json:"assets_within_limit"`
	SectorEligible      bool                `json:"sector_eligible"`
	FailedCriteria      []company.Criterion `json:"failed_criteria"`
	Liabilities         []company.Liability `json:"liabilities"`
}

type CompanyClassificationResponse struct {
	CalculationMetadata CalculationMetadata    `json:"calculation_metadata"`
	Messages            []CalculationMessage   `json:"messages"`
	Result              *CompanyClassification `json:"result"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
