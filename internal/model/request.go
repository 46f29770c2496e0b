package model

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"tax-engine/internal/input"
)

// Amount is a naira amount that decodes from a JSON number or from
// formatted text such as "1,200,000". Text must be a whole non-negative
// amount.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "-") || strings.Contains(s, ".") {
			return errors.Errorf("amount %q must be a whole non-negative number", s)
		}
		v, err := input.ParseAmount(s)
		if err != nil {
			return err
		}
		*a = Amount(v)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// TaxComparisonRequest carries gross income and contributions per Period.
// AnnualRent is always annual.
type TaxComparisonRequest struct {
	Period      string `json:"period"`
	GrossIncome Amount `json:"gross_income"`
	AnnualRent  Amount `json:"annual_rent"`
	Pension     Amount `json:"pension"`
	NHF         Amount `json:"nhf"`
	NHIS        Amount `json:"nhis"`
}

// RegimeTaxRequest carries already-annualized amounts for a single regime.
type RegimeTaxRequest struct {
	AnnualGross         Amount `json:"annual_gross"`
	AnnualRent          Amount `json:"annual_rent"`
	StatutoryDeductions Amount `json:"statutory_deductions"`
}

type CompanyClassificationRequest struct {
	Turnover         Amount `json:"turnover"`
	TotalFixedAssets Amount `json:"total_fixed_assets"`
	Sector           string `json:"sector"`
}
