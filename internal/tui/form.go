package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldGrade = iota
	fieldTopic
	fieldToken
)

var fieldLabels = []string{"grade", "topic", "key"}

// collects grade, topic and the bearer credential
type Form struct {
	inputs  []textinput.Model
	focused int
}

func NewForm(token string) *Form {
	inputs := make([]textinput.Model, len(fieldLabels))

	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.PromptStyle = promptStyle
		ti.TextStyle = inputStyle
		ti.Width = 60
		inputs[i] = ti
	}

	inputs[fieldGrade].Placeholder = "5th Grade"
	inputs[fieldGrade].CharLimit = 64
	inputs[fieldTopic].Placeholder = "Fractions"
	inputs[fieldTopic].CharLimit = 200
	inputs[fieldToken].Placeholder = "customer key or token"
	inputs[fieldToken].EchoMode = textinput.EchoPassword
	inputs[fieldToken].SetValue(token)

	inputs[fieldGrade].Focus()

	return &Form{inputs: inputs}
}

func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.focus((f.focused + 1) % len(f.inputs))
			return f, nil

		case "shift+tab", "up":
			f.focus((f.focused + len(f.inputs) - 1) % len(f.inputs))
			return f, nil

		case "enter":
			if f.focused < len(f.inputs)-1 {
				f.focus(f.focused + 1)
				return f, nil
			}

			return f, f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)

	return f, cmd
}

func (f *Form) View() string {
	var b strings.Builder

	for i, input := range f.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == f.focused {
			label = focusedLabelStyle.Render(fieldLabels[i])
		}

		b.WriteString(label + input.View() + "\n")
	}

	return b.String()
}

func (f *Form) focus(i int) {
	f.inputs[f.focused].Blur()
	f.focused = i
	f.inputs[f.focused].Focus()
}

// nil until grade, topic and key are all filled in
func (f *Form) submit() tea.Cmd {
	grade := strings.TrimSpace(f.inputs[fieldGrade].Value())
	topic := strings.TrimSpace(f.inputs[fieldTopic].Value())
	token := strings.TrimSpace(f.inputs[fieldToken].Value())

	for i, value := range []string{grade, topic, token} {
		if value == "" {
			f.focus(i)
			return nil
		}
	}

	return func() tea.Msg {
		return SubmitMsg{Grade: grade, Topic: topic, Token: token}
	}
}
