// Copyright (c) 2025 Neomantra Corp

package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// ReportPageModel renders one report (sweeps, icebergs, or stops) as a
// scrollable table. Its rows are computed once at construction, since
// an AnalysisResult is already fully formed by the time the TUI runs.
type ReportPageModel struct {
	title string
	table table.Model
}

// NewReportPage builds a page over a fixed set of columns and rows.
func NewReportPage(columns []table.Column, rows []table.Row) ReportPageModel {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithStyles(nimbleTableStyles),
		table.WithFocused(true),
	)
	return ReportPageModel{table: t}
}

func (m ReportPageModel) Init() tea.Cmd {
	return nil
}

func (m ReportPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(msg.Height - 4)
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m ReportPageModel) View() string {
	return nimbleBorderStyle.Render(m.table.View())
}
