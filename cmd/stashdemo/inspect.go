package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oliverbestmann/stash"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type entryKind int

const (
	resourceEntry entryKind = iota
	componentEntry
)

type entry struct {
	kind entryKind
	ty   reflect.Type
}

type inspectorModel struct {
	world    *stash.World
	entries  []entry
	selected int
	detail   bool
	help     help.Model
}

func newInspector(world *stash.World) *inspectorModel {
	m := &inspectorModel{
		world: world,
		help:  help.New(),
	}

	for _, ty := range world.ResourceTypes() {
		m.entries = append(m.entries, entry{kind: resourceEntry, ty: ty})
	}

	for _, ty := range world.ComponentTypes() {
		m.entries = append(m.entries, entry{kind: componentEntry, ty: ty})
	}

	return m
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}

		case key.Matches(msg, keys.Down):
			if m.selected < len(m.entries)-1 {
				m.selected++
			}

		case key.Matches(msg, keys.Detail):
			m.detail = !m.detail
		}
	}

	return m, nil
}

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("stash world inspector"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("The world is empty."))
		b.WriteString("\n")
	}

	previousKind := entryKind(-1)
	for idx, e := range m.entries {
		if e.kind != previousKind {
			previousKind = e.kind
			b.WriteString(sectionStyle.Render(sectionTitle(e.kind)))
			b.WriteString("\n")
		}

		line := "  " + m.summary(e)
		if idx == m.selected {
			line = selectedStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.detail && m.selected < len(m.entries) {
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(m.details(m.entries[m.selected])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))

	return b.String()
}

func sectionTitle(kind entryKind) string {
	if kind == resourceEntry {
		return "Resources"
	}

	return "Components"
}

func (m *inspectorModel) summary(e entry) string {
	if e.kind == resourceEntry {
		return e.ty.String()
	}

	return fmt.Sprintf("%s (%d)", e.ty, m.world.ComponentLenOf(e.ty))
}

func (m *inspectorModel) details(e entry) string {
	if e.kind == resourceEntry {
		value, ok := m.world.Resource(e.ty)
		if !ok {
			return "removed"
		}

		return strings.TrimSpace(dumper.Sdump(reflect.ValueOf(value).Elem().Interface()))
	}

	var parts []string
	for idx := range m.world.ComponentLenOf(e.ty) {
		shared, _ := m.world.Component(e.ty, idx)

		state := fmt.Sprintf("readers=%d writing=%t", shared.Readers(), shared.Writing())
		if shared.Writing() {
			parts = append(parts, fmt.Sprintf("[%d] %s", idx, state))
			continue
		}

		value := strings.TrimSpace(dumper.Sdump(shared.Value()))
		parts = append(parts, fmt.Sprintf("[%d] %s\n%s", idx, dimStyle.Render(state), value))
	}

	if len(parts) == 0 {
		return "no components"
	}

	return strings.Join(parts, "\n")
}
