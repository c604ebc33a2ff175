package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bookwright/bookwright/internal/tui/theme"
	"github.com/bookwright/bookwright/internal/tui/widget"
	"github.com/bookwright/bookwright/internal/wizard"
)

// PrefsStep collects optional content preferences as free text.
type PrefsStep struct {
	input  textarea.Model
	width  int
	height int
	err    string
}

// NewPrefsStep creates the content preferences step, restoring any
// previously entered text.
func NewPrefsStep(value string) *PrefsStep {
	ta := textarea.New()
	ta.Placeholder = "e.g., 'cozy tone, no graphic violence, found-family themes'\n\nLeave empty to skip."
	ta.CharLimit = wizard.MaxExtraLen
	ta.SetHeight(5)
	ta.SetWidth(60)
	ta.SetValue(value)
	ta.Focus()

	return &PrefsStep{input: ta}
}

// Init initializes the preferences step.
func (p *PrefsStep) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the preferences step.
func (p *PrefsStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+d":
			return p.Submit()
		case "tab":
			p.input.Blur()
			return func() tea.Msg {
				return widget.TabExitForwardMsg{}
			}
		case "shift+tab":
			p.input.Blur()
			return func() tea.Msg {
				return widget.TabExitBackwardMsg{}
			}
		default:
			if p.err != "" {
				p.err = ""
			}
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the preferences step content.
func (p *PrefsStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render("Any content preferences, themes, or restrictions? (optional)")

	box := lipgloss.NewStyle().
		Width(64).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderFocused)).
		Render(p.input.View())

	count := t.S().Muted.Render(
		fmt.Sprintf("%d/%d characters", utf8.RuneCountInString(p.input.Value()), wizard.MaxExtraLen))

	parts := []string{instruction, box, count}
	if p.err != "" {
		parts = append(parts, "", t.S().ErrorBanner.Render("✗ "+p.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the component dimensions.
func (p *PrefsStep) SetSize(width, height int) {
	p.width = width
	p.height = height
	w := width - 6
	if w < 20 {
		w = 20
	}
	p.input.SetWidth(w)
}

// Focus gives the textarea keyboard focus.
func (p *PrefsStep) Focus() tea.Cmd {
	return p.input.Focus()
}

// Blur removes keyboard focus.
func (p *PrefsStep) Blur() {
	p.input.Blur()
}

// Submit emits PrefsSubmittedMsg with the entered text.
func (p *PrefsStep) Submit() tea.Cmd {
	value := strings.TrimSpace(p.input.Value())
	if utf8.RuneCountInString(value) > wizard.MaxExtraLen {
		p.err = fmt.Sprintf("preferences too long (max %d characters)", wizard.MaxExtraLen)
		return nil
	}
	p.err = ""
	return func() tea.Msg {
		return PrefsSubmittedMsg{Text: value}
	}
}
