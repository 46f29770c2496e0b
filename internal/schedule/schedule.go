// Package schedule holds the statutory parameters of both regimes: band
// tables and relief formulas. The built-in values are the enacted ones; a
// YAML file can override any of them when the law is amended.
package schedule

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"tax-engine/internal/bands"
	"tax-engine/internal/regime"
)

type Band struct {
	Width     float64 `yaml:"width,omitempty"`
	Rate      float64 `yaml:"rate"`
	Unbounded bool    `yaml:"unbounded,omitempty"`
}

type PriorRules struct {
	ReliefFloor     float64 `yaml:"relief_floor"`
	ReliefFloorRate float64 `yaml:"relief_floor_rate"`
	ReliefGrossRate float64 `yaml:"relief_gross_rate"`
	Bands           []Band  `yaml:"bands"`
}

type CurrentRules struct {
	RentReliefRate float64 `yaml:"rent_relief_rate"`
	RentReliefCap  float64 `yaml:"rent_relief_cap"`
	Bands          []Band  `yaml:"bands"`
}

type Schedule struct {
	Prior   PriorRules   `yaml:"prior"`
	Current CurrentRules `yaml:"current"`
}

// Default returns the enacted schedule.
func Default() *Schedule {
	p := regime.DefaultPrior()
	c := regime.DefaultCurrent()
	return &Schedule{
		Prior: PriorRules{
			ReliefFloor:     p.ReliefFloor,
			ReliefFloorRate: p.ReliefFloorRate,
			ReliefGrossRate: p.ReliefGrossRate,
			Bands:           fromTable(p.Table),
		},
		Current: CurrentRules{
			RentReliefRate: c.RentReliefRate,
			RentReliefCap:  c.RentReliefCap,
			Bands:          fromTable(c.Table),
		},
	}
}

// Load reads a YAML schedule over the defaults. Keys missing from the file
// keep their enacted value; a bands list replaces the whole table. An empty
// path returns the defaults.
func Load(path string) (*Schedule, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read tax schedule")
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "parse tax schedule %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid tax schedule %s", path)
	}
	return s, nil
}

func (s *Schedule) Validate() error {
	if err := toTable(s.Prior.Bands).Validate(); err != nil {
		return errors.Wrap(err, "prior bands")
	}
	if err := toTable(s.Current.Bands).Validate(); err != nil {
		return errors.Wrap(err, "current bands")
	}
	for name, v := range map[string]float64{
		"prior.relief_floor":      s.Prior.ReliefFloor,
		"current.rent_relief_cap": s.Current.RentReliefCap,
	} {
		if v < 0 || math.IsNaN(v) {
			return errors.Errorf("%s must not be negative", name)
		}
	}
	for name, v := range map[string]float64{
		"prior.relief_floor_rate":  s.Prior.ReliefFloorRate,
		"prior.relief_gross_rate":  s.Prior.ReliefGrossRate,
		"current.rent_relief_rate": s.Current.RentReliefRate,
	} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return errors.Errorf("%s: rate %v outside [0,1]", name, v)
		}
	}
	return nil
}

func (s *Schedule) PriorRegime() regime.Prior {
	return regime.Prior{
		ReliefFloor:     s.Prior.ReliefFloor,
		ReliefFloorRate: s.Prior.ReliefFloorRate,
		ReliefGrossRate: s.Prior.ReliefGrossRate,
		Table:           toTable(s.Prior.Bands),
	}
}

func (s *Schedule) CurrentRegime() regime.Current {
	return regime.Current{
		RentReliefRate: s.Current.RentReliefRate,
		RentReliefCap:  s.Current.RentReliefCap,
		Table:          toTable(s.Current.Bands),
	}
}

// Regimes builds the regime set the engine computes with.
func (s *Schedule) Regimes() regime.Set {
	return regime.NewSet(s.PriorRegime(), s.CurrentRegime())
}

func (s *Schedule) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func toTable(bs []Band) bands.Table {
	t := make(bands.Table, len(bs))
	for i, b := range bs {
		w := b.Width
		if b.Unbounded {
			w = bands.Unbounded
		}
		t[i] = bands.Band{Width: w, Rate: b.Rate}
	}
	return t
}

func fromTable(t bands.Table) []Band {
	bs := make([]Band, len(t))
	for i, b := range t {
		if math.IsInf(b.Width, 1) {
			bs[i] = Band{Rate: b.Rate, Unbounded: true}
			continue
		}
		bs[i] = Band{Width: b.Width, Rate: b.Rate}
	}
	return bs
}
