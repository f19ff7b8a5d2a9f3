// Copyright (c) 2025 Neomantra Corp

package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/cme-go"
)

// Config is the TUI's input: the completed analysis to browse.
type Config struct {
	Result cme.AnalysisResult
}

// Run launches the report browser over config.Result until the user quits.
func Run(config Config) error {
	model := NewAppModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

//////////////////////////////////////////////////////////////////////////////

type AppModel struct {
	config Config

	pages       []tea.Model
	pageNames   []string
	currentPage int

	width            int
	height           int
	help             help.Model
	keyMap           AppKeyMap
	headerStyle      lipgloss.Style
	footerStyle      lipgloss.Style
	inactiveTabStyle lipgloss.Style
	activeTabStyle   lipgloss.Style
}

func NewAppModel(config Config) AppModel {
	m := AppModel{
		config:      config,
		currentPage: 0,
		pageNames:   []string{"1-Sweeps", "2-Icebergs", "3-Stops"},
		pages: []tea.Model{
			NewReportPage(sweepColumns, sweepRows(config.Result.Sweeps)),
			NewReportPage(icebergColumns, icebergRows(config.Result.Icebergs)),
			NewReportPage(stopColumns, stopRows(config.Result.Stops)),
		},
		width:  20,
		height: 10,
		help:   help.New(),
		keyMap: DefaultAppKeyMap(),
		headerStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorDarkPurple),
		footerStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorDarkPurple),
		inactiveTabStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorDarkPurple),
		activeTabStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorGrue),
	}
	return m
}

///////////////////////////////////////////////////////////////////////////////
// column/row builders

var sweepColumns = []table.Column{
	{Title: "Time", Width: 30},
	{Title: "Symbol", Width: 10},
	{Title: "Start", Width: 12},
	{Title: "End", Width: 12},
	{Title: "Volume", Width: 10},
	{Title: "Side", Width: 6},
}

func sweepRows(sweeps []cme.SweepRecord) []table.Row {
	rows := make([]table.Row, 0, len(sweeps))
	for _, s := range sweeps {
		rows = append(rows, table.Row{
			cme.FormatTimestamp(s.StartTime),
			s.Symbol,
			strconv.FormatInt(s.StartPrice, 10),
			strconv.FormatInt(s.EndPrice, 10),
			strconv.FormatInt(int64(s.TotalVolume), 10),
			sideLabel(s.IsBuy),
		})
	}
	return rows
}

var icebergColumns = []table.Column{
	{Title: "Time", Width: 30},
	{Title: "Symbol", Width: 10},
	{Title: "Price", Width: 12},
	{Title: "Show", Width: 8},
	{Title: "Traded", Width: 8},
	{Title: "Side", Width: 6},
}

func icebergRows(icebergs []cme.IcebergRecord) []table.Row {
	rows := make([]table.Row, 0, len(icebergs))
	for _, ice := range icebergs {
		side := "ASK"
		if ice.IsBid {
			side = "BID"
		}
		rows = append(rows, table.Row{
			cme.FormatTimestamp(ice.TS),
			ice.Symbol,
			strconv.FormatInt(ice.Price, 10),
			strconv.FormatInt(int64(ice.ShowQuantity), 10),
			strconv.FormatInt(int64(ice.TotalTraded), 10),
			side,
		})
	}
	return rows
}

var stopColumns = []table.Column{
	{Title: "Time", Width: 30},
	{Title: "Symbol", Width: 10},
	{Title: "OrderID", Width: 20},
	{Title: "Trigger", Width: 12},
	{Title: "Size", Width: 8},
	{Title: "Traded", Width: 8},
	{Title: "Side", Width: 6},
}

func stopRows(stops []cme.StopRecord) []table.Row {
	rows := make([]table.Row, 0, len(stops))
	for _, s := range stops {
		rows = append(rows, table.Row{
			cme.FormatTimestamp(s.TS),
			s.Symbol,
			strconv.FormatUint(s.OrderID, 10),
			strconv.FormatInt(s.TriggerPrice, 10),
			strconv.FormatUint(uint64(s.Size), 10),
			strconv.FormatUint(uint64(s.TradedSize), 10),
			sideLabel(s.IsBuy),
		})
	}
	return rows
}

func sideLabel(isBuy bool) string {
	if isBuy {
		return "BUY"
	}
	return "SELL"
}

///////////////////////////////////////////////////////////////////////////////
// AppKeyMap

type AppKeyMap struct {
	Quit          key.Binding
	FocusSweeps   key.Binding
	FocusIcebergs key.Binding
	FocusStops    key.Binding
}

func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		FocusSweeps: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sweeps"),
		),
		FocusIcebergs: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "icebergs"),
		),
		FocusStops: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "stops"),
		),
	}
}

func (m *AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.Quit, m.FocusSweeps, m.FocusIcebergs, m.FocusStops}}
}

func (m AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Quit, m.FocusSweeps, m.FocusIcebergs, m.FocusStops}
}

//////////////////////////////////////////////////////////////////////////////
// BubbleTea interface

func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, page := range m.pages {
		cmds = append(cmds, page.Init())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.FocusSweeps):
			m.currentPage = 0
		case key.Matches(msg, m.keyMap.FocusIcebergs):
			m.currentPage = 1
		case key.Matches(msg, m.keyMap.FocusStops):
			m.currentPage = 2
		}

		pageModel, cmd := m.pages[m.currentPage].Update(msg)
		m.pages[m.currentPage] = pageModel
		return m, cmd
	}

	var cmds []tea.Cmd
	for i := 0; i < len(m.pages); i++ {
		pageModel, cmd := m.pages[i].Update(msg)
		m.pages[i] = pageModel
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) View() string {
	viewStr := m.headerView() + "\n"
	if m.currentPage < 0 || m.currentPage >= len(m.pages) {
		viewStr += "Error: bad page\n"
	} else {
		viewStr += m.pages[m.currentPage].View() + "\n"
	}
	viewStr += m.footerView()
	return viewStr
}

///////////////////////////////////////////////////////////////////////////////

func (m *AppModel) headerView() string {
	header := m.headerStyle.Render(" cme-go-tui   ")
	for i, name := range m.pageNames {
		if i == m.currentPage {
			header += m.activeTabStyle.Render("[ " + name + " ]")
		} else {
			header += m.inactiveTabStyle.Render("| " + name + " |")
		}
		header += m.headerStyle.Render(" ")
	}

	const bigHeart = "❤"
	headerSuffix := m.headerStyle.Render(bigHeart + "nm ")
	restOfLine := maxInt(0, m.width-lipgloss.Width(header)-lipgloss.Width(headerSuffix))
	header += m.headerStyle.Render(strings.Repeat(" ", restOfLine))
	header += headerSuffix
	return header
}

func (m *AppModel) footerView() string {
	return m.help.View(&m.keyMap)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
