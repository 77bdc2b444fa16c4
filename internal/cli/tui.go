package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	ngerrors "github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/observability"
)

// Editor styles
var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent)
	helpStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the graph interactively",
		Long: `Edit the graph interactively.

Type commands at the prompt (help lists them). Every edit is saved and the
diagram is re-rendered. ctrl+z undoes, ctrl+y redoes, tab switches between
the node and link tables, esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Log lines would tear the terminal UI; show the latest one in
			// the status area instead.
			sink := &lastLine{}
			logger := newLogger(sink, c.Logger.GetLevel())
			logger.SetReportTimestamp(false)
			observability.NewLogHooks(logger).Install()

			s, closeAll, err := c.openSessionWithLogger(ctx, logger)
			if err != nil {
				return err
			}
			defer closeAll()

			m := newEditModel(ctx, &editor{s: s, colour: c.cfg.Colour(), shape: c.cfg.Shape()}, sink)
			m.title = c.graphFile
			if _, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			printSuccess("Saved %s", c.graphFile)
			printDetail("%s", formatStats(s.Store))
			return nil
		},
	}
}

// lastLine is an io.Writer that keeps the most recent line written to it.
type lastLine struct {
	mu   sync.Mutex
	line string
}

func (l *lastLine) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if line := strings.TrimSpace(string(p)); line != "" {
		l.line = line
	}
	return len(p), nil
}

func (l *lastLine) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.line
}

// =============================================================================
// EditModel - Interactive graph editor
// =============================================================================

// EditModel is the bubbletea model of the interactive editor: a node (or
// link) table above a command prompt.
type EditModel struct {
	ctx    context.Context
	ed     *editor
	log    fmt.Stringer
	title  string
	input  textinput.Model
	status string
	failed bool

	showLinks bool
	cursor    int
}

func newEditModel(ctx context.Context, ed *editor, log fmt.Stringer) EditModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.Cursor.Style = cursorStyle
	ti.Placeholder = "help"
	ti.Focus()
	return EditModel{ctx: ctx, ed: ed, log: log, title: appName, input: ti}
}

func (m EditModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles the editor's own keys and passes everything else,
// including cursor blinks, to the prompt.
func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlZ:
		m.report(historyStep(m.ed.s.Undo(m.ctx))("undo"))
	case tea.KeyCtrlY:
		m.report(historyStep(m.ed.s.Redo(m.ctx))("redo"))
	case tea.KeyTab:
		m.showLinks = !m.showLinks
		m.cursor = 0
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case tea.KeyCtrlN:
		m.insert(m.selectedName())
	case tea.KeyEnter:
		line := m.input.Value()
		m.input.Reset()
		out, err := m.ed.exec(m.ctx, line)
		if errors.Is(err, errQuit) {
			return m, tea.Quit
		}
		m.report(out, err)
	default:
		return m.updateInput(msg)
	}

	if n := m.rows(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m, nil
}

func (m EditModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// insert puts text into the prompt at the cursor.
func (m *EditModel) insert(text string) {
	line, pos := []rune(m.input.Value()), m.input.Position()
	m.input.SetValue(string(line[:pos]) + text + string(line[pos:]))
	m.input.SetCursor(pos + len([]rune(text)))
}

// report sets the status line from the result of a command.
func (m *EditModel) report(out string, err error) {
	m.failed = err != nil
	if err != nil {
		m.status = ngerrors.UserMessage(err)
		return
	}
	m.status = out
}

func (m EditModel) rows() int {
	if m.showLinks {
		return len(m.ed.s.Store.Edges())
	}
	return m.ed.s.Store.Len()
}

// selectedName is the highlighted node name, quoted when it has spaces.
func (m EditModel) selectedName() string {
	var name string
	if m.showLinks {
		if edges := m.ed.s.Store.Edges(); m.cursor < len(edges) {
			name = edges[m.cursor].From
		}
	} else if names := m.ed.s.Store.NodeNames(); m.cursor < len(names) {
		name = names[m.cursor]
	}
	if strings.ContainsAny(name, " \t") {
		return `"` + name + `"`
	}
	return name
}

func (m EditModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(formatStats(m.ed.s.Store)))
	b.WriteString("\n\n")

	switch {
	case m.rows() == 0 && !m.showLinks:
		b.WriteString(helpStyle.Render("No nodes yet. Try: add Router Blue box"))
	case m.rows() == 0:
		b.WriteString(helpStyle.Render("No links yet. Try: link A B message"))
	case m.showLinks:
		b.WriteString(linkTable(m.ed.s.Store, m.cursor))
	default:
		b.WriteString(nodeTable(m.ed.s.Store, m.cursor))
	}
	b.WriteString("\n\n")

	switch {
	case m.status == "":
	case m.failed:
		b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(m.status) + "\n")
	default:
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status + "\n")
	}
	if line := m.log.String(); line != "" {
		b.WriteString(StyleDim.Render(line) + "\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(helpStyle.Render("⏎ run  ctrl+z undo  ctrl+y redo  tab nodes/links  ↑/↓ select  ctrl+n insert name  ctrl+u clear  esc quit"))

	return b.String()
}
