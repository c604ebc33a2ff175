package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bookwright/bookwright/internal/tui/theme"
	"github.com/bookwright/bookwright/internal/tui/widget"
	"github.com/bookwright/bookwright/internal/wizard"
)

// ConceptStep collects the book concept and optional notes.
type ConceptStep struct {
	concept    textarea.Model
	notes      textinput.Model
	notesFocus bool // true when the notes input has focus
	width      int
	height     int
	err        string
}

// NewConceptStep creates the concept input step, restoring any previously
// entered values.
func NewConceptStep(concept, notes string) *ConceptStep {
	ta := textarea.New()
	ta.Placeholder = "e.g., 'A retired assassin opens a bakery in a town full of old enemies.'"
	ta.CharLimit = wizard.MaxConceptLen
	ta.SetHeight(5)
	ta.SetWidth(60)
	ta.SetValue(concept)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "Additional notes (optional)"
	ti.CharLimit = wizard.MaxNotesLen
	ti.SetValue(notes)

	return &ConceptStep{
		concept: ta,
		notes:   ti,
	}
}

func validateConceptInput(s string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	if n < wizard.MinConceptLen {
		return fmt.Errorf("concept too short (minimum %d characters)", wizard.MinConceptLen)
	}
	if n > wizard.MaxConceptLen {
		return fmt.Errorf("concept too long (max %d characters)", wizard.MaxConceptLen)
	}
	return nil
}

// Init initializes the concept step.
func (c *ConceptStep) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the concept step.
func (c *ConceptStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+d":
			return c.Submit()
		case "tab":
			if !c.notesFocus {
				c.notesFocus = true
				c.concept.Blur()
				return c.notes.Focus()
			}
			// Tab from notes moves to buttons
			c.notes.Blur()
			return func() tea.Msg {
				return widget.TabExitForwardMsg{}
			}
		case "shift+tab":
			if c.notesFocus {
				c.notesFocus = false
				c.notes.Blur()
				return c.concept.Focus()
			}
			return func() tea.Msg {
				return widget.TabExitBackwardMsg{}
			}
		case "enter":
			if c.notesFocus {
				return c.Submit()
			}
		default:
			if c.err != "" {
				c.err = ""
			}
		}
	}

	var cmd tea.Cmd
	if c.notesFocus {
		c.notes, cmd = c.notes.Update(msg)
	} else {
		c.concept, cmd = c.concept.Update(msg)
	}
	return cmd
}

// View renders the concept step content.
func (c *ConceptStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render("Describe your book idea in 2-3 sentences:")

	boxStyle := lipgloss.NewStyle().
		Width(64).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))
	if !c.notesFocus {
		boxStyle = boxStyle.BorderForeground(lipgloss.Color(t.BorderFocused))
	}
	conceptBox := boxStyle.Render(c.concept.View())

	notesStyle := lipgloss.NewStyle().
		Width(64).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))
	if c.notesFocus {
		notesStyle = notesStyle.BorderForeground(lipgloss.Color(t.BorderFocused))
	}
	notesBox := notesStyle.Render(c.notes.View())

	count := t.S().Muted.Render(
		fmt.Sprintf("%d/%d characters", utf8.RuneCountInString(strings.TrimSpace(c.concept.Value())), wizard.MaxConceptLen))

	parts := []string{instruction, conceptBox, count, "", notesBox}
	if c.err != "" {
		parts = append(parts, "", t.S().ErrorBanner.Render("✗ "+c.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the component dimensions.
func (c *ConceptStep) SetSize(width, height int) {
	c.width = width
	c.height = height
	w := width - 6
	if w < 20 {
		w = 20
	}
	c.concept.SetWidth(w)
}

// Focus gives keyboard focus back to the concept textarea.
func (c *ConceptStep) Focus() tea.Cmd {
	c.notesFocus = false
	c.notes.Blur()
	return c.concept.Focus()
}

// FocusLast gives keyboard focus to the notes input.
func (c *ConceptStep) FocusLast() tea.Cmd {
	c.notesFocus = true
	c.concept.Blur()
	return c.notes.Focus()
}

// Blur removes focus from both inputs.
func (c *ConceptStep) Blur() {
	c.concept.Blur()
	c.notes.Blur()
}

// Valid reports whether the concept passes validation.
func (c *ConceptStep) Valid() bool {
	return validateConceptInput(c.concept.Value()) == nil
}

// Submit validates the concept and emits ConceptSubmittedMsg.
func (c *ConceptStep) Submit() tea.Cmd {
	value := strings.TrimSpace(c.concept.Value())
	if err := validateConceptInput(value); err != nil {
		c.err = err.Error()
		return nil
	}
	c.err = ""
	notes := strings.TrimSpace(c.notes.Value())
	return func() tea.Msg {
		return ConceptSubmittedMsg{Concept: value, Notes: notes}
	}
}
