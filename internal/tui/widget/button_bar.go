package widget

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bookwright/bookwright/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with focus tracking and consistent
// styling. Disabled buttons are skipped when focus moves.
type ButtonBar struct {
	buttons []Button
	focused int // index of focused button, -1 when none
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focused: -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// FocusFirst moves focus to the first enabled button.
func (b *ButtonBar) FocusFirst() {
	b.Blur()
	for i, btn := range b.buttons {
		if btn.State != ButtonDisabled {
			b.setFocus(i)
			return
		}
	}
}

// FocusLast moves focus to the last enabled button.
func (b *ButtonBar) FocusLast() {
	b.Blur()
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return
		}
	}
}

// FocusNext moves focus to the next enabled button. Returns false when focus
// runs off the end of the bar.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focused + 1; i < len(b.buttons); i++ {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return true
		}
	}
	b.Blur()
	return false
}

// FocusPrev moves focus to the previous enabled button. Returns false when
// focus runs off the front of the bar.
func (b *ButtonBar) FocusPrev() bool {
	for i := b.focused - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return true
		}
	}
	b.Blur()
	return false
}

// Blur removes focus from all buttons.
func (b *ButtonBar) Blur() {
	if b.focused >= 0 && b.focused < len(b.buttons) {
		b.buttons[b.focused].State = ButtonNormal
	}
	b.focused = -1
}

// FocusedButton returns the label of the focused button, empty when none.
func (b *ButtonBar) FocusedButton() string {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return ""
	}
	return b.buttons[b.focused].Label
}

func (b *ButtonBar) setFocus(i int) {
	b.buttons[i].State = ButtonFocused
	b.focused = i
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}
	t := theme.Current()

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Primary)).
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	var renderedButtons []string
	for _, btn := range b.buttons {
		var rendered string
		switch btn.State {
		case ButtonDisabled:
			rendered = disabledStyle.Render(btn.Label)
		case ButtonFocused:
			rendered = focusedStyle.Render(btn.Label)
		default: // ButtonNormal
			rendered = normalStyle.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	result := strings.Join(renderedButtons, "")

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}

// CreateBackNextButtons creates the standard Back/Next button set.
// backEnabled: whether Back button is enabled
// nextEnabled: whether Next button is enabled (false if step invalid)
// nextLabel: custom label for next button (e.g., "Next", "Finish")
func CreateBackNextButtons(backEnabled, nextEnabled bool, nextLabel string) []Button {
	buttons := make([]Button, 0, 2)

	backState := ButtonNormal
	if !backEnabled {
		backState = ButtonDisabled
	}
	buttons = append(buttons, Button{Label: "← Back", State: backState})

	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	buttons = append(buttons, Button{Label: nextLabel, State: nextState})

	return buttons
}

// CreateCancelNextButtons creates the Cancel/Next button set for step 1.
func CreateCancelNextButtons(nextEnabled bool, nextLabel string) []Button {
	buttons := make([]Button, 0, 2)

	buttons = append(buttons, Button{Label: "Cancel", State: ButtonNormal})

	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	buttons = append(buttons, Button{Label: nextLabel, State: nextState})

	return buttons
}
