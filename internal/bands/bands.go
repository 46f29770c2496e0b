package bands

import (
	"math"

	"github.com/pkg/errors"
)

// Unbounded is the width of the final band of a table.
var Unbounded = math.Inf(1)

type Band struct {
	Width float64
	Rate  float64
}

type Table []Band

type Charge struct {
	Rate   float64
	Amount float64
	Tax    float64
}

// Apply taxes the base band by band, each band consuming at most its width.
func Apply(taxable float64, table Table) float64 {
	var tax float64
	remaining := taxable
	for _, b := range table {
		if remaining <= 0 {
			break
		}
		chunk := math.Min(remaining, b.Width)
		tax += chunk * b.Rate
		remaining -= chunk
	}
	return tax
}

func Breakdown(taxable float64, table Table) []Charge {
	var charges []Charge
	remaining := taxable
	for _, b := range table {
		if remaining <= 0 {
			break
		}
		chunk := math.Min(remaining, b.Width)
		charges = append(charges, Charge{
			Rate:   b.Rate,
			Amount: chunk,
			Tax:    chunk * b.Rate,
		})
		remaining -= chunk
	}
	return charges
}

func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.New("band table is empty")
	}
	last := len(t) - 1
	for i, b := range t {
		if b.Rate < 0 || b.Rate > 1 || math.IsNaN(b.Rate) {
			return errors.Errorf("band %d: rate %v outside [0,1]", i, b.Rate)
		}
		if i == last {
			if !math.IsInf(b.Width, 1) {
				return errors.Errorf("band %d: final band must be unbounded", i)
			}
			continue
		}
		if b.Width <= 0 || math.IsInf(b.Width, 0) || math.IsNaN(b.Width) {
			return errors.Errorf("band %d: width %v must be finite and positive", i, b.Width)
		}
	}
	return nil
}

func (t Table) MaxRate() float64 {
	var highest float64
	for _, b := range t {
		if b.Rate > highest {
			highest = b.Rate
		}
	}
	return highest
}

func (t Table) ZeroRateWidth() float64 {
	var width float64
	for _, b := range t {
		if b.Rate != 0 {
			break
		}
		width += b.Width
	}
	return width
}
