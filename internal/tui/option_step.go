package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bookwright/bookwright/internal/api"
	"github.com/bookwright/bookwright/internal/tui/theme"
	"github.com/bookwright/bookwright/internal/tui/widget"
)

// OptionStep renders a selection step: ranked options with score badges and
// the advisory reasoning underneath.
type OptionStep struct {
	step      int
	question  string
	options   []api.Option
	reasoning string
	cursor    int
	width     int
	height    int
	focused   bool
}

// NewOptionStep creates a selection step for the given metadata. selected
// restores the cursor onto a previously chosen option.
func NewOptionStep(step int, question string, options []api.Option, reasoning, selected string) *OptionStep {
	s := &OptionStep{
		step:      step,
		question:  question,
		options:   options,
		reasoning: reasoning,
		focused:   true,
	}
	for i, opt := range options {
		if opt.ID == selected {
			s.cursor = i
			break
		}
	}
	return s
}

// Init initializes the option step.
func (s *OptionStep) Init() tea.Cmd {
	return nil
}

// Update handles messages for the option step.
func (s *OptionStep) Update(msg tea.Msg) tea.Cmd {
	if !s.focused {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.options)-1 {
				s.cursor++
			}
		case "enter", " ":
			return s.Submit()
		case "tab":
			return func() tea.Msg {
				return widget.TabExitForwardMsg{}
			}
		case "shift+tab":
			return func() tea.Msg {
				return widget.TabExitBackwardMsg{}
			}
		}
	}
	return nil
}

// View renders the option list with score badges and reasoning.
func (s *OptionStep) View() string {
	t := theme.Current()

	question := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render(s.question)

	if len(s.options) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			question,
			t.S().Muted.Render("No options available."),
		)
	}

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
	cursorNameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))

	var rows []string
	for i, opt := range s.options {
		marker := "  "
		name := nameStyle.Render(opt.Name)
		if i == s.cursor {
			marker = cursorNameStyle.Render("▸ ")
			name = cursorNameStyle.Render(opt.Name)
		}
		line := marker + name + " " + s.scoreBadge(opt.RecommendationScore)
		if opt.MarketAppeal != "" {
			line += " " + t.S().Muted.Render("("+opt.MarketAppeal+" demand)")
		}
		rows = append(rows, line)
		if i == s.cursor && opt.Description != "" {
			rows = append(rows, descStyle.Render("    "+opt.Description))
		}
	}

	parts := []string{question, strings.Join(rows, "\n")}
	if s.reasoning != "" {
		width := s.width
		if width <= 0 {
			width = 60
		}
		parts = append(parts, "", renderMarkdown("_"+s.reasoning+"_", width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// scoreBadge colors the recommendation score on a red→green gradient.
func (s *OptionStep) scoreBadge(score float64) string {
	if score <= 0 {
		return ""
	}
	t := theme.Current()
	color := theme.InterpolateColor(t.ScoreLow, t.ScoreHigh, score/100)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(fmt.Sprintf("%.0f", score))
}

// SetSize updates the component dimensions.
func (s *OptionStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus gives the list keyboard focus.
func (s *OptionStep) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur removes keyboard focus.
func (s *OptionStep) Blur() {
	s.focused = false
}

// Selected returns the option id under the cursor.
func (s *OptionStep) Selected() string {
	if s.cursor < 0 || s.cursor >= len(s.options) {
		return ""
	}
	return s.options[s.cursor].ID
}

// Submit emits OptionChosenMsg for the option under the cursor.
func (s *OptionStep) Submit() tea.Cmd {
	id := s.Selected()
	if id == "" {
		return nil
	}
	step := s.step
	return func() tea.Msg {
		return OptionChosenMsg{Step: step, Selection: id}
	}
}
