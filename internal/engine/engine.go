package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tax-engine/internal/bands"
	"tax-engine/internal/company"
	"tax-engine/internal/input"
	"tax-engine/internal/model"
	"tax-engine/internal/regime"
)

// Engine validates caller input and runs it through the tax regimes and the
// small company classifier. It holds no mutable state.
type Engine struct {
	regimes regime.Set
	log     *zap.Logger
}

func New(regimes regime.Set, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{regimes: regimes, log: log}
}

// Exempt is the label shown for the current regime. threshold is the width of
// the zero-rate bands of the configured table.
func Exempt(annualGross, currentTax, threshold float64) bool {
	return annualGross > 0 && (currentTax == 0 || annualGross <= threshold)
}

type zeroRated interface {
	ZeroRateWidth() float64
}

func exemptionThreshold(r regime.Regime) float64 {
	if z, ok := r.(zeroRated); ok {
		return z.ZeroRateWidth()
	}
	return regime.ExemptionThreshold
}

func (e *Engine) CompareTax(req *model.TaxComparisonRequest) *model.TaxComparisonResponse {
	start := time.Now()
	var msgs messages

	period, err := input.ParsePeriod(req.Period)
	if err != nil {
		msgs.add(model.LevelCritical, model.CodeInvalidPeriod, err.Error())
	}
	msgs.checkAmounts(
		namedAmount{"gross_income", req.GrossIncome},
		namedAmount{"annual_rent", req.AnnualRent},
		namedAmount{"pension", req.Pension},
		namedAmount{"nhf", req.NHF},
		namedAmount{"nhis", req.NHIS},
	)

	prior, current, ok := e.comparedRegimes(&msgs)
	if msgs.critical() || !ok {
		return &model.TaxComparisonResponse{
			CalculationMetadata: e.finish(start, model.OutcomeFailure, msgs),
			Messages:            msgs.list(),
		}
	}

	in := regime.Income{
		Gross:     period.Annualize(float64(req.GrossIncome)),
		Rent:      float64(req.AnnualRent),
		Statutory: period.Annualize(float64(req.Pension + req.NHF + req.NHIS)),
	}
	if in.Gross == 0 {
		msgs.add(model.LevelWarning, model.CodeNoIncome, "Gross income is zero; nothing to compare")
	}

	pa := prior.Assess(in)
	ca := current.Assess(in)
	diff := pa.Tax - ca.Tax

	result := &model.TaxComparison{
		AnnualGrossIncome:         in.Gross,
		AnnualRent:                in.Rent,
		AnnualStatutoryDeductions: in.Statutory,
		Prior:                     regimeResult(prior.Name(), pa),
		Current:                   regimeResult(current.Name(), ca),
		AnnualDifference:          diff,
		MonthlyDifference:         input.MonthlyEquivalent(diff),
		Saving:                    diff >= 0,
		Exempt:                    Exempt(in.Gross, ca.Tax, exemptionThreshold(current)),
	}

	meta := e.finish(start, model.OutcomeSuccess, msgs)
	e.log.Debug("tax comparison computed",
		zap.String("calculation_id", meta.CalculationID),
		zap.String("period", string(period)),
		zap.Float64("annual_gross", in.Gross),
		zap.Float64("prior_tax", pa.Tax),
		zap.Float64("current_tax", ca.Tax),
		zap.Bool("exempt", result.Exempt),
	)

	return &model.TaxComparisonResponse{
		CalculationMetadata: meta,
		Messages:            msgs.list(),
		Result:              result,
	}
}

// ComputeTax runs a single named regime over already-annualized amounts.
func (e *Engine) ComputeTax(name string, req *model.RegimeTaxRequest) *model.RegimeTaxResponse {
	start := time.Now()
	var msgs messages

	r, ok := e.regimes.Get(name)
	if !ok {
		msgs.add(model.LevelCritical, model.CodeUnknownRegime, fmt.Sprintf("Unknown regime: %s", name))
	}
	msgs.checkAmounts(
		namedAmount{"annual_gross", req.AnnualGross},
		namedAmount{"annual_rent", req.AnnualRent},
		namedAmount{"statutory_deductions", req.StatutoryDeductions},
	)
	if msgs.critical() {
		return &model.RegimeTaxResponse{
			CalculationMetadata: e.finish(start, model.OutcomeFailure, msgs),
			Messages:            msgs.list(),
		}
	}

	a := r.Assess(regime.Income{
		Gross:     float64(req.AnnualGross),
		Rent:      float64(req.AnnualRent),
		Statutory: float64(req.StatutoryDeductions),
	})
	result := regimeResult(r.Name(), a)

	return &model.RegimeTaxResponse{
		CalculationMetadata: e.finish(start, model.OutcomeSuccess, msgs),
		Messages:            msgs.list(),
		Result:              &result,
	}
}

func (e *Engine) ClassifyCompany(req *model.CompanyClassificationRequest) *model.CompanyClassificationResponse {
	start := time.Now()
	var msgs messages

	sector, err := company.ParseSector(req.Sector)
	if err != nil {
		msgs.add(model.LevelCritical, model.CodeUnknownSector, err.Error())
	}
	msgs.checkAmounts(
		namedAmount{"turnover", req.Turnover},
		namedAmount{"total_fixed_assets", req.TotalFixedAssets},
	)
	if msgs.critical() {
		return &model.CompanyClassificationResponse{
			CalculationMetadata: e.finish(start, model.OutcomeFailure, msgs),
			Messages:            msgs.list(),
		}
	}

	a := company.Assess(float64(req.Turnover), float64(req.TotalFixedAssets), sector)
	if !a.HasTurnover {
		msgs.add(model.LevelWarning, model.CodeNoTurnover, "Turnover is zero; company status cannot be determined")
	}

	failed := a.FailedCriteria()
	if failed == nil {
		failed = []company.Criterion{}
	}

	meta := e.finish(start, model.OutcomeSuccess, msgs)
	e.log.Debug("company classified",
		zap.String("calculation_id", meta.CalculationID),
		zap.String("sector", string(sector)),
		zap.Bool("small_company", a.Small),
	)

	return &model.CompanyClassificationResponse{
		CalculationMetadata: meta,
		Messages:            msgs.list(),
		Result: &model.CompanyClassification{
			SmallCompany:        a.Small,
			HasTurnover:         a.HasTurnover,
			TurnoverWithinLimit: a.TurnoverWithinLimit,
			AssetsWithinLimit:   a.AssetsWithinLimit,
			SectorEligible:      a.SectorEligible,
			FailedCriteria:      failed,
			Liabilities:         a.Liabilities(),
		},
	}
}

func (e *Engine) comparedRegimes(msgs *messages) (prior, current regime.Regime, ok bool) {
	prior, okPrior := e.regimes.Get(regime.PriorName)
	current, okCurrent := e.regimes.Get(regime.CurrentName)
	if !okPrior {
		msgs.add(model.LevelCritical, model.CodeUnknownRegime, "Prior regime is not configured")
	}
	if !okCurrent {
		msgs.add(model.LevelCritical, model.CodeUnknownRegime, "Current regime is not configured")
	}
	return prior, current, okPrior && okCurrent
}

func (e *Engine) finish(start time.Time, outcome string, msgs messages) model.CalculationMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()

	if outcome == model.OutcomeFailure {
		e.log.Info("calculation rejected", zap.Int("messages", len(msgs)))
	}

	return model.CalculationMetadata{
		CalculationID:          uuid.New().String(),
		CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		CalculationCompletedAt: now.Format(time.RFC3339),
		CalculationDurationMs:  elapsed.Milliseconds(),
		CalculationOutcome:     outcome,
	}
}

func regimeResult(name string, a regime.Assessment) model.RegimeResult {
	return model.RegimeResult{
		Regime:        name,
		Relief:        a.Relief,
		Deductions:    a.Statutory,
		TaxableIncome: a.Taxable,
		AnnualTax:     a.Tax,
		MonthlyTax:    input.MonthlyEquivalent(a.Tax),
		Bands:         bandCharges(a.Bands),
	}
}

func bandCharges(charges []bands.Charge) []model.BandCharge {
	out := make([]model.BandCharge, len(charges))
	for i, c := range charges {
		out[i] = model.BandCharge{Rate: c.Rate, Amount: c.Amount, Tax: c.Tax}
	}
	return out
}
