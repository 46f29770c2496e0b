package regime

import (
	"math"

	"tax-engine/internal/bands"
)

var PriorBands = bands.Table{
	{Width: 300_000, Rate: 0.07},
	{Width: 300_000, Rate: 0.11},
	{Width: 500_000, Rate: 0.15},
	{Width: 500_000, Rate: 0.19},
	{Width: 1_600_000, Rate: 0.21},
	{Width: bands.Unbounded, Rate: 0.24},
}

// Prior is the allowance-based regime. CRA is the greater of ReliefFloor and
// ReliefFloorRate of gross, plus ReliefGrossRate of gross.
type Prior struct {
	ReliefFloor     float64
	ReliefFloorRate float64
	ReliefGrossRate float64
	Table           bands.Table
}

func DefaultPrior() Prior {
	return Prior{
		ReliefFloor:     200_000,
		ReliefFloorRate: 0.01,
		ReliefGrossRate: 0.20,
		Table:           PriorBands,
	}
}

func (p Prior) Name() string { return PriorName }

func (p Prior) CRA(gross float64) float64 {
	return math.Max(p.ReliefFloor, p.ReliefFloorRate*gross) + p.ReliefGrossRate*gross
}

func (p Prior) Assess(in Income) Assessment {
	return assess(in, p.CRA(in.Gross), p.Table)
}

func PriorTax(annualGross, pensionDeduction float64) float64 {
	return DefaultPrior().Assess(Income{Gross: annualGross, Statutory: pensionDeduction}).Tax
}
