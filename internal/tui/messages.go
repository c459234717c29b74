package tui

import (
	"github.com/rgehrsitz/heis/internal/domain"
)

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// CalculationCompleteMsg carries the result of one engine run. Seq ties the
// result to the request that produced it so stale runs can be dropped.
type CalculationCompleteMsg struct {
	Seq        int
	Assessment *domain.ImpactAssessment
	Points     []domain.TimeSeriesPoint
	Scenarios  []domain.ScenarioResult
	Err        error
}
