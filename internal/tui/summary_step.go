package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bookwright/bookwright/internal/catalog"
	"github.com/bookwright/bookwright/internal/tui/theme"
	"github.com/bookwright/bookwright/internal/tui/widget"
)

// summaryRows fixes the display order of the book definition.
var summaryRows = []struct {
	key   string
	label string
}{
	{catalog.KeyGenre, "Genre"},
	{catalog.KeySubgenre, "Subgenre"},
	{catalog.KeyAudience, "Audience"},
	{catalog.KeyStyle, "Writing style"},
	{catalog.KeyLength, "Length"},
	{catalog.KeyStructure, "Structure"},
	{catalog.KeyWorld, "World"},
	{catalog.KeyContent, "Content preferences"},
}

// SummaryStep shows the completed book definition for final review.
type SummaryStep struct {
	formData  map[string]string
	savedPath string
	width     int
	height    int
	focused   bool
}

// NewSummaryStep creates the summary step over the session's form data.
func NewSummaryStep(formData map[string]string) *SummaryStep {
	return &SummaryStep{formData: formData, focused: true}
}

// Init initializes the summary step.
func (s *SummaryStep) Init() tea.Cmd {
	return nil
}

// Update handles messages for the summary step.
func (s *SummaryStep) Update(msg tea.Msg) tea.Cmd {
	if !s.focused {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return func() tea.Msg {
				return FinishMsg{}
			}
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

// SetSavedPath records where the definition was written, shown on re-render.
func (s *SummaryStep) SetSavedPath(path string) {
	s.savedPath = path
}

// View renders the book definition as a markdown document.
func (s *SummaryStep) View() string {
	t := theme.Current()

	var b strings.Builder
	fmt.Fprintf(&b, "**Concept**\n\n%s\n\n", s.formData[catalog.KeyConcept])
	for _, row := range summaryRows {
		val := s.formData[row.key]
		if val == "" {
			continue
		}
		if row.key != catalog.KeyContent {
			val = catalog.DisplayName(val)
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", row.label, val)
	}

	width := s.width
	if width <= 0 {
		width = 60
	}
	doc := renderMarkdown(b.String(), width)

	parts := []string{doc}
	if s.savedPath != "" {
		saved := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Render("✓ Saved to " + s.savedPath)
		parts = append(parts, "", saved)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the component dimensions.
func (s *SummaryStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus gives the step keyboard focus.
func (s *SummaryStep) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur removes keyboard focus.
func (s *SummaryStep) Blur() {
	s.focused = false
}
