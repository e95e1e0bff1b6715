package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/pathfind"
	"github.com/matzehuels/layerroute/pkg/pipeline"
	"github.com/matzehuels/layerroute/pkg/render"
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorGray)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// browserKeys are the key bindings of the path browser.
type browserKeys struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Select key.Binding
	Quit   key.Binding
}

var defaultBrowserKeys = browserKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab", "left", "right", "h", "l"),
		key.WithHelp("tab", "switch list"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k browserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Select, k.Quit}
}

func (k browserKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// =============================================================================
// PathBrowserModel - Interactive path comparison
// =============================================================================

// PathEntry is one row of the path browser.
type PathEntry struct {
	Kind   string // "L1" or "L1+L2"
	Index  int    // 1-based rank within its list
	Path   pathfind.Path
	Text   string // Rendered path string, e.g. "0->1--2->3"
	Weight float64
}

// Hops returns the number of edges on the path.
func (e PathEntry) Hops() int { return max(len(e.Path)-1, 0) }

// PathBrowserModel is the bubbletea model for browsing the structural and
// augmented paths of a comparison. Tab switches between the two lists.
type PathBrowserModel struct {
	Lists    [2][]PathEntry
	Tab      int
	Cursor   int
	Offset   int
	Height   int
	Selected *PathEntry

	keys browserKeys
	help help.Model
}

// NewPathBrowserModel creates a browser over the paths found in g.
func NewPathBrowserModel(g *layered.Graph, found pipeline.SearchResult) PathBrowserModel {
	return PathBrowserModel{
		Lists: [2][]PathEntry{
			pathEntries(g, "L1", found.Structural),
			pathEntries(g, "L1+L2", found.Augmented),
		},
		Height: 15,
		keys:   defaultBrowserKeys,
		help:   help.New(),
	}
}

func pathEntries(g *layered.Graph, kind string, paths []pathfind.Path) []PathEntry {
	out := make([]PathEntry, len(paths))
	for i, p := range paths {
		out[i] = PathEntry{
			Kind:   kind,
			Index:  i + 1,
			Path:   p,
			Text:   render.PathString(g, p),
			Weight: p.Weight(g),
		}
	}
	return out
}

func (m PathBrowserModel) current() []PathEntry { return m.Lists[m.Tab] }

func (m PathBrowserModel) Init() tea.Cmd {
	return nil
}

func (m PathBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			m.Tab = 1 - m.Tab
			m.Cursor, m.Offset = 0, 0
		case key.Matches(msg, m.keys.Up):
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case key.Matches(msg, m.keys.Down):
			if m.Cursor < len(m.current())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case key.Matches(msg, m.keys.Select):
			list := m.current()
			if len(list) == 0 {
				return m, nil
			}
			entry := list[m.Cursor]
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m PathBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Compare Paths"))
	b.WriteString("\n")
	for i, name := range []string{"L1", "L1+L2"} {
		label := fmt.Sprintf("%s (%d)", name, len(m.Lists[i]))
		if i == m.Tab {
			b.WriteString(tabActiveStyle.Render(label))
		} else {
			b.WriteString(tabInactiveStyle.Render(label))
		}
		b.WriteString("   ")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")

	list := m.current()
	if len(list) == 0 {
		b.WriteString(listDimStyle.Render("  no paths"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(list))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := list[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, fmt.Sprint(e.Index), e.Text, fmt.Sprint(e.Hops()), fmt.Sprintf("%g", e.Weight)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Path", "Hops", "Weight").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(list))))

	return b.String()
}

// browsePaths runs the path browser and returns the chosen entry, or nil
// when the user quit without choosing.
func browsePaths(ctx context.Context, m PathBrowserModel) (*PathEntry, error) {
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(PathBrowserModel)
	if !ok {
		return nil, nil
	}
	return fm.Selected, nil
}
