package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/videobatch/types"
)

// TaskDetail is what the interactive prompt collected
type TaskDetail struct {
	Task      types.TaskType
	Input     string
	Continue  bool
	Cancelled bool
}

type promptStep int

const (
	stepTask promptStep = iota
	stepPath
	stepConfirm
	stepDone
)

// PromptModel asks for a task, an input path and a confirmation
type PromptModel struct {
	tasks  []types.TaskOption
	cursor int
	input  textinput.Model
	step   promptStep
	detail TaskDetail
}

// NewPromptModel creates the questionnaire model
func NewPromptModel() PromptModel {
	ti := textinput.New()
	ti.Placeholder = "Video path or a folder of videos"
	ti.Prompt = "> "

	return PromptModel{
		tasks: types.Tasks,
		input: ti,
	}
}

// Init implements tea.Model
func (m PromptModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.detail.Cancelled = true
		m.step = stepDone
		return m, tea.Quit
	}

	switch m.step {
	case stepTask:
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "enter":
			m.detail.Task = m.tasks[m.cursor].Value
			m.step = stepPath
			return m, m.input.Focus()
		}

	case stepPath:
		if key.String() == "enter" {
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				value = "."
			}
			m.detail.Input = value
			m.input.Blur()
			m.step = stepConfirm
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case stepConfirm:
		switch key.String() {
		case "y", "Y", "enter":
			m.detail.Continue = true
		case "n", "N":
			m.detail.Continue = false
		default:
			return m, nil
		}
		m.step = stepDone
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m PromptModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Welcome to videobatch!"))
	b.WriteString("\n")

	switch m.step {
	case stepTask:
		b.WriteString(ProcessingStyle.Render("Pick a task"))
		b.WriteString("\n")
		for i, t := range m.tasks {
			cursor := "  "
			if i == m.cursor {
				cursor = "› "
			}
			fmt.Fprintf(&b, "%s%s\n", cursor, t.Label)
		}
	case stepPath:
		b.WriteString(ProcessingStyle.Render("Enter input path"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case stepConfirm:
		fmt.Fprintf(&b, "%s %s\n", ProcessingStyle.Render("Do you want to continue?"), InfoStyle.Render("(Y/n)"))
	case stepDone:
		if m.detail.Cancelled {
			return ErrorStyle.Render("Operation cancelled.") + "\n"
		}
		return ""
	}

	b.WriteString(InfoStyle.Render("esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// Detail returns the collected answers
func (m PromptModel) Detail() TaskDetail {
	return m.detail
}

// RunPrompt runs the questionnaire on the given terminal streams
func RunPrompt(in io.Reader, out io.Writer) (TaskDetail, error) {
	final, err := tea.NewProgram(NewPromptModel(), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return TaskDetail{}, fmt.Errorf("prompt failed: %w", err)
	}
	m, ok := final.(PromptModel)
	if !ok {
		return TaskDetail{}, fmt.Errorf("prompt returned unexpected model %T", final)
	}
	return m.Detail(), nil
}
