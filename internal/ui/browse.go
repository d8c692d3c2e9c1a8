package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hostlink/internal/namespace"
)

type entryKind uint8

const (
	entryPackage entryKind = iota
	entryType
)

type entry struct {
	name string
	kind entryKind
}

type scanDoneMsg struct{}

// browseModel is a Bubble Tea model walking the namespace tree. The first
// lookup triggers the tracker's lazy scan, so the model shows a spinner until
// the root listing is available.
type browseModel struct {
	top      *namespace.Top
	current  *namespace.Tracker
	path     []string
	entries  []entry
	cursor   int
	width    int
	scanning bool
	spin     spinner.Model
}

// NewBrowseModel returns a model browsing the given tracker's tree.
func NewBrowseModel(top *namespace.Top) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return &browseModel{
		top:      top,
		current:  top.Root(),
		width:    80,
		scanning: true,
		spin:     sp,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		// Force the one-shot bootstrap and pending scans off the UI loop.
		m.top.Root().TryGetPackageAny("")
		return scanDoneMsg{}
	})
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDoneMsg:
		m.scanning = false
		m.reload()
		return m, nil
	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", "right", "l":
		m.descend()
	case "backspace", "left", "h":
		m.ascend()
	}
	return m, nil
}

func (m *browseModel) descend() {
	if m.cursor >= len(m.entries) {
		return
	}
	e := m.entries[m.cursor]
	if e.kind != entryPackage {
		return
	}
	child, ok := m.current.TryGetPackage(e.name)
	if !ok {
		return
	}
	m.path = append(m.path, e.name)
	m.current = child
	m.cursor = 0
	m.reload()
}

func (m *browseModel) ascend() {
	if len(m.path) == 0 {
		return
	}
	m.path = m.path[:len(m.path)-1]
	node := m.top.Root()
	for _, seg := range m.path {
		next, ok := node.TryGetPackage(seg)
		if !ok {
			break
		}
		node = next
	}
	m.current = node
	m.cursor = 0
	m.reload()
}

func (m *browseModel) reload() {
	m.entries = m.entries[:0]
	for _, seg := range m.current.Children() {
		m.entries = append(m.entries, entry{name: seg, kind: entryPackage})
	}
	for _, name := range m.current.TypeNames() {
		m.entries = append(m.entries, entry{name: name, kind: entryType})
	}
	if m.cursor >= len(m.entries) {
		m.cursor = 0
	}
}

func (m *browseModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	pkgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))

	header := "hostlink namespaces"
	if len(m.path) > 0 {
		header = fmt.Sprintf("%s / %s", header, strings.Join(m.path, "."))
	}
	if m.scanning {
		header = fmt.Sprintf("%s %s (scanning)", m.spin.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if !m.scanning && len(m.entries) == 0 {
		b.WriteString("  (empty)\n")
	}
	nameWidth := m.width - 14
	if nameWidth < 20 {
		nameWidth = 20
	}
	for i, e := range m.entries {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		label := truncate(e.name, nameWidth)
		switch e.kind {
		case entryPackage:
			label = pkgStyle.Render(label + "/")
		case entryType:
			label = typeStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", marker, label))
	}

	b.WriteString("\n")
	b.WriteString("  enter: open  backspace: up  q: quit\n")
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
