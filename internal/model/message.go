package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeInvalidAmount = "INVALID_AMOUNT"
	CodeInvalidPeriod = "INVALID_PERIOD"
	CodeUnknownSector = "UNKNOWN_SECTOR"
	CodeUnknownRegime = "UNKNOWN_REGIME"
	// CodeNoIncome marks a zero gross income: no input yet, not an exemption.
	CodeNoIncome   = "NO_INCOME"
	CodeNoTurnover = "NO_TURNOVER"
)
