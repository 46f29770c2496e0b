// Package company decides whether a business is a small company under
// Section 202 of the Nigeria Tax Act 2025.
package company

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	TurnoverLimit   = 50_000_000
	FixedAssetLimit = 250_000_000
)

type Sector string

const (
	General              Sector = "general"
	ProfessionalServices Sector = "professional-services"
	UpstreamOilGas       Sector = "upstream-oil-gas"
)

var sectorAliases = map[string]Sector{
	"":                      General,
	"general":               General,
	"professional-services": ProfessionalServices,
	"professional":          ProfessionalServices,
	"upstream-oil-gas":      UpstreamOilGas,
	"oil":                   UpstreamOilGas,
}

// ParseSector also accepts "professional" and "oil". Empty means General.
func ParseSector(s string) (Sector, error) {
	sector, ok := sectorAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", errors.Errorf("unknown sector %q", s)
	}
	return sector, nil
}

type Criterion string

const (
	CriterionTurnover Criterion = "TURNOVER_LIMIT"
	CriterionAssets   Criterion = "FIXED_ASSET_LIMIT"
	CriterionSector   Criterion = "EXCLUDED_SECTOR"
)

type Assessment struct {
	// false for a turnover of 0: no data, not a qualifying company
	HasTurnover         bool
	TurnoverWithinLimit bool
	AssetsWithinLimit   bool
	SectorEligible      bool
	Small               bool
}

// Only professional services are excluded by sector.
func Assess(turnover, totalAssets float64, sector Sector) Assessment {
	a := Assessment{
		HasTurnover:         turnover > 0,
		TurnoverWithinLimit: turnover <= TurnoverLimit,
		AssetsWithinLimit:   totalAssets <= FixedAssetLimit,
		SectorEligible:      sector != ProfessionalServices,
	}
	a.Small = a.HasTurnover && a.TurnoverWithinLimit && a.AssetsWithinLimit && a.SectorEligible
	return a
}

func Classify(turnover, totalAssets float64, sector Sector) bool {
	return Assess(turnover, totalAssets, sector).Small
}

func (a Assessment) FailedCriteria() []Criterion {
	var failed []Criterion
	if !a.TurnoverWithinLimit {
		failed = append(failed, CriterionTurnover)
	}
	if !a.AssetsWithinLimit {
		failed = append(failed, CriterionAssets)
	}
	if !a.SectorEligible {
		failed = append(failed, CriterionSector)
	}
	return failed
}

type Liability struct {
	Name    string  `json:"name"`
	Rate    float64 `json:"rate"`
	Section string  `json:"section,omitempty"`
	Exempt  bool    `json:"exempt"`
}

var (
	smallCompanyLiabilities = []Liability{
		{Name: "Company Income Tax", Rate: 0, Section: "56", Exempt: true},
		{Name: "Development Levy", Rate: 0, Section: "59", Exempt: true},
	}
	standardCompanyLiabilities = []Liability{
		{Name: "Company Income Tax", Rate: 0.30},
		{Name: "Development Levy", Rate: 0.04, Section: "59"},
		{Name: "Value Added Tax", Rate: 0.075},
	}
)

func (a Assessment) Liabilities() []Liability {
	src := standardCompanyLiabilities
	if a.Small {
		src = smallCompanyLiabilities
	}
	out := make([]Liability, len(src))
	copy(out, src)
	return out
}
