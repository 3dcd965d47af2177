package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab represents a screen tab in the TUI.
type Tab int

const (
	TabWatchlist Tab = iota
	TabDetail
)

var tabNames = []string{"1:Watchlist", "2:Detail"}

// AppModel is the root Bubble Tea model that manages tab navigation.
type AppModel struct {
	services  Services
	activeTab Tab
	watchlist WatchlistModel
	width     int
	height    int
	quitting  bool
}

// NewAppModel creates the root application model.
func NewAppModel(svc Services) AppModel {
	return AppModel{
		services:  svc,
		activeTab: TabWatchlist,
		watchlist: NewWatchlistModel(svc),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.watchlist.Init()
}

// Update handles global keys and forwards everything else to the watchlist,
// which also backs the detail tab.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, DefaultKeyMap.Tab):
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, nil

		case key.Matches(msg, DefaultKeyMap.ShiftTab):
			next := int(m.activeTab) - 1
			if next < 0 {
				next = len(tabNames) - 1
			}
			m.activeTab = Tab(next)
			return m, nil

		case msg.String() == "1":
			m.activeTab = TabWatchlist
			return m, nil
		case msg.String() == "2":
			m.activeTab = TabDetail
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.watchlist, cmd = m.watchlist.Update(msg)
	return m, cmd
}

// View renders the tab bar and active screen.
func (m AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var content string
	switch m.activeTab {
	case TabWatchlist:
		content = m.watchlist.View()
	case TabDetail:
		row, ok := m.watchlist.Selected()
		if !ok {
			content = SubtextStyle.Render("Nothing selected")
		} else {
			content = BorderStyle.Width(max(40, m.width-2)).Render(renderDetail(row, m.width))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), content)
}

// SetSize updates dimensions on the root model and propagates to children.
func (m *AppModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.propagateSize()
}

// ActiveTab returns the currently active tab (for testing).
func (m AppModel) ActiveTab() Tab { return m.activeTab }

func (m *AppModel) propagateSize() {
	contentHeight := m.height - 2 // account for tab bar
	m.watchlist.SetSize(m.width, contentHeight)
}

func (m AppModel) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
