package status

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/drivefocus/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final status view model")

// The view is drawn in two passes: the state flags, then the rejection list.
type (
	stateSectionMsg   struct{ body string }
	historySectionMsg struct{ body string }
)

type model struct {
	sections []string
	done     bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateSectionMsg:
		m.sections = append(m.sections, msg.body)
		return m, nil
	case historySectionMsg:
		m.sections = append(m.sections, msg.body)
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	if !m.done {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.sections...)
}

// Render draws the status view once and returns it as a string.
func Render(status application.Status, opts RenderOptions) (string, error) {
	s := newStyles()
	window := opts.window()

	p := tea.NewProgram(
		model{},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)
	go func() {
		p.Send(stateSectionMsg{body: renderState(status, s)})
		p.Send(historySectionMsg{body: s.section.Render(renderHistory(status, window, s))})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
