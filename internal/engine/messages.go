package engine

import (
	"fmt"

	"tax-engine/internal/model"
)

type messages []model.CalculationMessage

func (m *messages) add(level, code, text string) {
	*m = append(*m, model.CalculationMessage{
		ID:      len(*m),
		Level:   level,
		Code:    code,
		Message: text,
	})
}

func (m messages) critical() bool {
	for _, msg := range m {
		if msg.Level == model.LevelCritical {
			return true
		}
	}
	return false
}

// list never returns nil so responses always carry a messages array.
func (m messages) list() []model.CalculationMessage {
	if m == nil {
		return []model.CalculationMessage{}
	}
	return m
}

type namedAmount struct {
	name  string
	value model.Amount
}

// checkAmounts enforces the calculators' precondition that every amount is
// non-negative.
func (m *messages) checkAmounts(amounts ...namedAmount) {
	for _, a := range amounts {
		if a.value < 0 {
			m.add(model.LevelCritical, model.CodeInvalidAmount, fmt.Sprintf("%s must not be negative", a.name))
		}
	}
}
