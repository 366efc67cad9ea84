package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// header and footer lines reserved around the lesson viewport
const chromeHeight = 4

func NewApp(endpoint, token string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	refine := textinput.New()
	refine.Prompt = "refine> "
	refine.PromptStyle = promptStyle
	refine.TextStyle = inputStyle
	refine.Placeholder = "add a vocabulary warm-up"
	refine.Width = 70

	return &Model{
		state:   StateForm,
		client:  NewLessonClient(endpoint, token),
		form:    NewForm(token),
		spinner: sp,
		refine:  refine,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// any key clears a shown error
		if m.err != nil {
			m.err = nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

		if m.lesson != nil {
			return m, m.renderCmd()
		}

		return m, nil

	case SubmitMsg:
		m.grade = msg.Grade
		m.topic = msg.Topic
		m.client.SetToken(msg.Token)
		m.state = StateLoading

		return m, tea.Batch(m.spinner.Tick, m.client.GenerateCmd(msg.Grade, msg.Topic))

	case LessonMsg:
		m.lesson = msg.response
		m.state = StateLesson

		return m, m.renderCmd()

	case renderedMsg:
		m.viewport.SetContent(msg.content)
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		if m.lesson != nil {
			m.state = StateLesson
		} else {
			m.state = StateForm
		}

		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	switch m.state {
	case StateForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)

		return m, cmd

	case StateLesson:
		return m.updateLesson(msg)

	case StateRefine:
		return m.updateRefine(msg)

	default:
		return m, nil
	}
}

func (m *Model) updateLesson(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "r":
			m.state = StateRefine
			m.refine.SetValue("")
			return m, m.refine.Focus()

		case "n":
			m.lesson = nil
			m.state = StateForm
			return m, nil

		case "q", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m *Model) updateRefine(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.refine.Blur()
			m.state = StateLesson
			return m, nil

		case "enter":
			instruction := strings.TrimSpace(m.refine.Value())
			m.refine.Blur()

			if instruction == "" {
				m.state = StateLesson
				return m, nil
			}

			m.state = StateLoading

			return m, tea.Batch(
				m.spinner.Tick,
				m.client.RefineCmd(m.lesson.Artifact, instruction, m.grade, m.topic),
			)
		}
	}

	var cmd tea.Cmd
	m.refine, cmd = m.refine.Update(msg)

	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder

	switch m.state {
	case StateForm:
		b.WriteString(titleStyle.Render(logo))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("lesson plans and worksheets for any grade and topic"))
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
		b.WriteString(helpStyle.Render("tab to move between fields. enter to generate. ctrl+c to quit."))

	case StateLoading:
		fmt.Fprintf(&b, "\n  %s preparing %s...\n", m.spinner.View(), heading(m.grade, m.topic))

	case StateLesson, StateRefine:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")

		if m.state == StateRefine {
			b.WriteString(m.refine.View())
		} else {
			b.WriteString(helpStyle.Render("r refine | n new lesson | ↑/↓ scroll | q quit"))
		}
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorView(m.err))
	}

	return b.String()
}

// carries rendered lesson content back into Update
type renderedMsg struct {
	content string
}

func (m *Model) renderCmd() tea.Cmd {
	resp, grade, topic, width := m.lesson, m.grade, m.topic, m.viewport.Width

	return func() tea.Msg {
		markdown := LessonMarkdown(resp, grade, topic)

		out, err := RenderMarkdown(markdown, width, "")
		if err != nil {
			return renderedMsg{content: markdown}
		}

		return renderedMsg{content: out}
	}
}

func (m *Model) resizeViewport() {
	height := m.height - chromeHeight
	if height < 1 {
		height = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, height)
		m.ready = true
		return
	}

	m.viewport.Width = m.width
	m.viewport.Height = height
}

func errorView(err error) string {
	return warningStyle.Render("  error: ") + errorStyle.Render(err.Error()) +
		helpStyle.Render("\n  press any key to continue")
}
