// Package tui is a terminal client for the catalog API: ask questions in
// plain language, or prefix a line with /search for a raw similarity search.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

func NewApp() *Model {
	input := textinput.New()
	input.Placeholder = "Pregunta por un libro, o /search <consulta>"
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Model{
		input:   input,
		spinner: spin,
		client:  NewClient(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.isFetching {
				return m, nil
			}

			return m, m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ChatResponseMsg:
		m.isFetching = false
		m.appendAnswer(msg.answer, msg.sources)
		m.refreshViewport()

		return m, nil

	case SearchResponseMsg:
		m.isFetching = false
		m.appendAnswer(msg.summary, nil)
		m.refreshViewport()

		return m, nil

	case APIErrorMsg:
		m.isFetching = false
		m.err = msg.err
		m.refreshViewport()

		return m, nil

	case spinner.TickMsg:
		if m.isFetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	var cmds []tea.Cmd

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	var viewportCmd tea.Cmd
	m.viewport, viewportCmd = m.viewport.Update(msg)
	cmds = append(cmds, viewportCmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if !m.ready {
		return "\n  cargando..."
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("libroteca"))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	}

	if m.isFetching {
		sb.WriteString(m.spinner.View() + " consultando el catálogo...\n")
	} else {
		sb.WriteString(m.input.View() + "\n")
	}

	sb.WriteString(helpStyle.Render("enter: enviar · /search <consulta>: búsqueda directa · esc: salir"))

	return sb.String()
}

func (m *Model) submit() tea.Cmd {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return nil
	}

	m.input.Reset()
	m.err = nil
	m.isFetching = true
	m.history = append(m.history, entry{role: "you", content: line})
	m.refreshViewport()

	if query, ok := strings.CutPrefix(line, "/search "); ok {
		return tea.Batch(m.spinner.Tick, m.client.SearchCmd(strings.TrimSpace(query)))
	}

	return tea.Batch(m.spinner.Tick, m.client.ChatCmd(line))
}

func (m *Model) appendAnswer(answer string, sources []string) {
	content := answer

	if len(sources) > 0 {
		content += "\n\n" + sourceStyle.Render("Fuentes: "+strings.Join(sources, "; "))
	}

	m.history = append(m.history, entry{role: "libroteca", content: content})
}

func (m *Model) resize() {
	inputWidth := m.width - 4
	if inputWidth > 0 {
		m.input.Width = inputWidth
	}

	viewportHeight := m.height - 7
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.width-2),
	)

	if err == nil {
		m.glamourRenderer = renderer
	}

	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var sb strings.Builder

	for _, item := range m.history {
		switch item.role {
		case "you":
			sb.WriteString(userStyle.Render("tú> ") + item.content + "\n\n")

		default:
			sb.WriteString(assistantStyle.Render(m.renderMarkdown(item.content)) + "\n")
		}
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderMarkdown(content string) string {
	if m.glamourRenderer == nil {
		return content
	}

	rendered, err := m.glamourRenderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(rendered) + "\n"
}
