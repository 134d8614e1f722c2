package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gitgraph/pkg/layout"
	"github.com/matzehuels/gitgraph/pkg/model"
)

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// placementKeys are the key bindings of the placement table.
type placementKeys struct {
	Up, Down, First, Last, Quit key.Binding
}

var placementKeyMap = placementKeys{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	First: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Last:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k placementKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.First, k.Last, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k placementKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// =============================================================================
// PlacementModel - Interactive placement table
// =============================================================================

// placementRow is one placed commit.
type placementRow struct {
	ID       string
	Seq      int
	X, Y     float64
	Branches []string
	Parents  []string
	Message  string
}

// PlacementModel is the bubbletea model for browsing node placements in
// placement order.
type PlacementModel struct {
	Title  string
	Rows   []placementRow
	Notes  []string // truncations and other pass diagnostics
	Cursor int
	Height int
	Offset int

	help help.Model
}

// NewPlacementModel builds the table from the nodes a layout pass placed.
func NewPlacementModel(title string, m model.Model, nodes []layout.Node, res *layout.Result) PlacementModel {
	rows := make([]placementRow, 0, len(nodes))
	for _, n := range nodes {
		row := placementRow{ID: n.ID, X: n.At.X, Y: n.At.Y, Branches: n.Labels.Branches}
		if c, ok := m.Commits().Get(n.ID); ok {
			row.Seq, row.Parents, row.Message = c.Seq, c.Parents, c.Message
		}
		rows = append(rows, row)
	}
	var notes []string
	if res != nil {
		for _, t := range res.Truncations {
			notes = append(notes, t.String())
		}
	}
	h := help.New()
	h.Styles.ShortKey = listDimStyle.Bold(true)
	h.Styles.ShortDesc = listDimStyle
	return PlacementModel{Title: title, Rows: rows, Notes: notes, Height: 15, help: h}
}

func (m PlacementModel) Init() tea.Cmd {
	return nil
}

func (m PlacementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, placementKeyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, placementKeyMap.Up):
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case key.Matches(msg, placementKeyMap.Down):
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case key.Matches(msg, placementKeyMap.First):
			m.Cursor, m.Offset = 0, 0
		case key.Matches(msg, placementKeyMap.Last):
			m.Cursor = max(len(m.Rows)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		m.help.Width = msg.Width
		m.Offset = max(min(m.Offset, m.Cursor), m.Cursor-m.Height+1, 0)
	}
	return m, nil
}

func (m PlacementModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(placementKeyMap.ShortHelp()))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		branches := strings.Join(r.Branches, ", ")
		if branches == "" {
			branches = "—"
		}
		rows = append(rows, []string{
			cursor, r.ID, fmt.Sprint(r.Seq),
			fmt.Sprintf("%g", r.X), fmt.Sprintf("%g", r.Y),
			branches, truncate(r.Message, 32),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Commit", "Seq", "X", "Y", "Branches", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 2 && col <= 4 {
				base = base.Foreground(colorCyan)
			}
			if idx == m.Cursor {
				return base.Bold(true).Foreground(colorGreen)
			}
			if len(m.Rows[idx].Branches) == 0 && col == 5 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(m.Rows) > 0 {
		cur := m.Rows[m.Cursor]
		parents := strings.Join(cur.Parents, ", ")
		if parents == "" {
			parents = "root"
		}
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %s ← %s", m.Cursor+1, len(m.Rows), cur.ID, parents)))
		b.WriteString("\n")
	}
	for _, n := range m.Notes {
		b.WriteString(StyleWarning.Render(iconWarning + " " + n))
		b.WriteString("\n")
	}

	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
