package app

import (
	"fmt"

	"github.com/Mecusp/odecamtakeoff/pkg/plan"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

// CalibrationPrompt asks for the real length of a captured segment
type CalibrationPrompt struct {
	Pixels float64
}

// Message returns the question shown to the user
func (p CalibrationPrompt) Message(f *units.Formatter) string {
	return fmt.Sprintf("Qual a medida real (em metros) da referência de %s px?", f.Number(p.Pixels))
}

// PlanState holds the loaded base image
type PlanState struct {
	plan *plan.Plan
}

// PromptState holds the open calibration prompt, if any
type PromptState struct {
	calibration *CalibrationPrompt
}

// HistoryState lists shape ids in commit order so scripts can refer to
// them as @N or last
type HistoryState struct {
	committed []string
}
