package main

import (
	"fmt"
	"os"

	"github.com/AndrewLester/ntpaltime/internal/sugar"
	"github.com/AndrewLester/ntpaltime/internal/ui"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func handleQueryCommand(query fetchQuery) {
	m := newQueryCommandModel(query)

	if _, err := sugar.RunProgramWithErrors(m); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

type queryCommandModel struct {
	spinner spinner.Model
	query   fetchQuery
	result  *fetchResult
	err     error
}

type ntpQueryMessage *fetchResult
type ntpQueryError error

func newQueryCommandModel(query fetchQuery) queryCommandModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.SpinnerColor)),
	)
	return queryCommandModel{spinner: s, query: query}
}

func ntpQueryCommand(query fetchQuery) tea.Cmd {
	return func() tea.Msg {
		result, err := query.run()
		if err != nil {
			return ntpQueryError(err)
		}
		return ntpQueryMessage(result)
	}
}

func (m queryCommandModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, ntpQueryCommand(m.query))
}

func (m queryCommandModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case ntpQueryMessage:
		m.result = msg
		return m, tea.Quit
	case ntpQueryError:
		m.err = msg
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m queryCommandModel) View() (s string) {
	if m.err != nil {
		return
	}

	if m.result == nil {
		s += ui.Title("NTPal - Time") + "\n\n"
		s += m.spinner.View() + " Querying " + m.query.server + "\n\n"
		s += ui.Help("q: exit") + "\n"
	} else {
		s += formatResult(m.result, uiStyles)
	}
	return
}

func (m queryCommandModel) GetError() error {
	return m.err
}
