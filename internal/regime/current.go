package regime

import (
	"math"

	"tax-engine/internal/bands"
)

// ExemptionThreshold is the zero-rate first band of the 2025 Act.
const ExemptionThreshold = 800_000

var CurrentBands = bands.Table{
	{Width: ExemptionThreshold, Rate: 0},
	{Width: 2_200_000, Rate: 0.15},
	{Width: 9_000_000, Rate: 0.18},
	{Width: 13_000_000, Rate: 0.21},
	{Width: 25_000_000, Rate: 0.23},
	{Width: bands.Unbounded, Rate: 0.25},
}

type Current struct {
	RentReliefRate float64
	RentReliefCap  float64
	Table          bands.Table
}

func DefaultCurrent() Current {
	return Current{
		RentReliefRate: 0.20,
		RentReliefCap:  500_000,
		Table:          CurrentBands,
	}
}

func (c Current) Name() string { return CurrentName }

func (c Current) RentRelief(annualRent float64) float64 {
	return math.Min(annualRent*c.RentReliefRate, c.RentReliefCap)
}

// ZeroRateWidth is the income the leading 0% bands of the table cover.
func (c Current) ZeroRateWidth() float64 {
	return c.Table.ZeroRateWidth()
}

func (c Current) Assess(in Income) Assessment {
	return assess(in, c.RentRelief(in.Rent), c.Table)
}

func CurrentTax(annualGross, annualRent, pensionDeduction float64) float64 {
	return DefaultCurrent().Assess(Income{Gross: annualGross, Rent: annualRent, Statutory: pensionDeduction}).Tax
}
