// Package regime computes annual personal income tax under the prior and
// 2025 regimes. Inputs must be non-negative annual naira amounts.
package regime

import (
	"sort"

	"tax-engine/internal/bands"
)

const (
	PriorName   = "prior"
	CurrentName = "current"
)

type Income struct {
	Gross float64
	Rent float64
	Statutory float64
}

type Assessment struct {
	Relief    float64
	Statutory float64
	Taxable   float64
	Tax       float64
	Bands     []bands.Charge
}

// Regime defines the contract for all tax regimes.
type Regime interface {
	Name() string
	Assess(in Income) Assessment
}

type Set map[string]Regime

func NewSet(regimes ...Regime) Set {
	s := make(Set, len(regimes))
	for _, r := range regimes {
		s[r.Name()] = r
	}
	return s
}

func (s Set) Get(name string) (Regime, bool) {
	r, ok := s[name]
	return r, ok
}

func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Defaults() Set {
	return NewSet(DefaultPrior(), DefaultCurrent())
}

// A base at or below zero carries no tax and no band charges.
func assess(in Income, relief float64, table bands.Table) Assessment {
	a := Assessment{
		Relief:    relief,
		Statutory: in.Statutory,
	}
	taxable := in.Gross - relief - in.Statutory
	if taxable <= 0 {
		return a
	}
	a.Taxable = taxable
	a.Tax = bands.Apply(taxable, table)
	a.Bands = bands.Breakdown(taxable, table)
	return a
}
