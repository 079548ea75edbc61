package sugar

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ErrorModel is a Bubble Tea model that finishes with a result or an error.
type ErrorModel interface {
	tea.Model
	GetError() error
}

// RunProgramWithErrors runs model to completion and returns the error it
// recorded, if any.
func RunProgramWithErrors(model ErrorModel, opts ...tea.ProgramOption) (resultModel tea.Model, err error) {
	resultModel, teaErr := tea.NewProgram(model, opts...).Run()
	if errorModel, ok := resultModel.(ErrorModel); ok {
		err = errorModel.GetError()
	}

	// Bubble Tea errors override model errors
	if teaErr != nil {
		err = teaErr
	}

	return
}
