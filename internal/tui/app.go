// Package tui implements the interactive book wizard: nine steps from
// concept to a saved book definition, driven by the wizard controller.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/bookwright/bookwright/internal/bookfile"
	"github.com/bookwright/bookwright/internal/catalog"
	"github.com/bookwright/bookwright/internal/config"
	"github.com/bookwright/bookwright/internal/logger"
	"github.com/bookwright/bookwright/internal/tui/theme"
	"github.com/bookwright/bookwright/internal/tui/widget"
	"github.com/bookwright/bookwright/internal/wizard"
)

// Modal layout constants
const (
	modalWidth        = 74
	modalPadding      = 2
	modalBorderWidth  = 1
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2)
)

// Model is the main BubbleTea model for the book wizard. It renders the
// current step and translates step messages into controller calls.
type Model struct {
	ctrl *wizard.Controller
	cfg  *config.Config
	ctx  context.Context

	width     int
	height    int
	cancelled bool
	savedPath string

	spin    spinner.Model
	loading bool

	// Step components
	conceptStep *ConceptStep
	optionStep  *OptionStep
	prefsStep   *PrefsStep
	summaryStep *SummaryStep

	// Button bar with focus tracking
	buttonBar     *widget.ButtonBar
	buttonFocused bool
}

// New creates the wizard model.
func New(cfg *config.Config, ctrl *wizard.Controller) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		ctrl: ctrl,
		cfg:  cfg,
		ctx:  context.Background(),
		spin: sp,
	}
}

// Run runs the wizard to completion and returns the path of the saved book
// definition. Cancellation returns an error.
func Run(cfg *config.Config, ctrl *wizard.Controller) (string, error) {
	m := New(cfg, ctrl)

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("wizard failed: %w", err)
	}

	wm, ok := finalModel.(*Model)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if wm.cancelled {
		return "", fmt.Errorf("wizard cancelled by user")
	}
	return wm.savedPath, nil
}

// Init initializes the wizard model.
func (m *Model) Init() tea.Cmd {
	return m.initCurrentStep()
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if m.loading {
			// Only allow abort while a request is in flight.
			if msg.String() == "ctrl+c" {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		// Handle button-focused keyboard input
		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					return m, m.focusStepContent()
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					return m, m.focusStepContent()
				}
				return m, nil
			case "enter", " ":
				return m.activateButton(m.buttonBar.FocusedButton())
			}
		}

		// Global keybindings
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			if m.ctrl.CurrentStep() == wizard.StepConcept {
				m.cancelled = true
				return m, tea.Quit
			}
			return m.goBack()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case ConceptSubmittedMsg:
		m.loading = true
		ctrl, ctx := m.ctrl, m.ctx
		start := func() tea.Msg {
			return SessionStartedMsg{Err: ctrl.StartSession(ctx, msg.Concept, msg.Notes)}
		}
		return m, tea.Batch(m.spin.Tick, start)

	case SessionStartedMsg:
		m.loading = false
		if msg.Err != nil {
			logger.Warn("tui: start session failed: %v", msg.Err)
			return m, nil
		}
		return m, m.enterStep()

	case OptionChosenMsg:
		m.loading = true
		ctrl, ctx := m.ctrl, m.ctx
		submit := func() tea.Msg {
			sel := msg.Selection
			if _, err := ctrl.SubmitStep(ctx, msg.Step, &sel, ""); err != nil {
				return StepAdvancedMsg{Err: err}
			}
			ctrl.Advance(ctx)
			return StepAdvancedMsg{}
		}
		return m, tea.Batch(m.spin.Tick, submit)

	case PrefsSubmittedMsg:
		m.loading = true
		ctrl, ctx := m.ctrl, m.ctx
		submit := func() tea.Msg {
			if _, err := ctrl.SubmitStep(ctx, wizard.StepContent, nil, msg.Text); err != nil {
				return StepAdvancedMsg{Err: err}
			}
			ctrl.Advance(ctx)
			return StepAdvancedMsg{}
		}
		return m, tea.Batch(m.spin.Tick, submit)

	case StepAdvancedMsg:
		m.loading = false
		if msg.Err != nil {
			logger.Warn("tui: step submit failed: %v", msg.Err)
			return m, nil
		}
		return m, m.enterStep()

	case StepDataMsg:
		m.loading = false
		if msg.Err != nil {
			logger.Warn("tui: step fetch failed: %v", msg.Err)
		}
		return m, m.initCurrentStep()

	case GoBackMsg:
		return m.goBack()

	case FinishMsg:
		if !m.ctrl.Finish() {
			return m, nil
		}
		ctrl, dir := m.ctrl, m.cfg.DataDir
		save := func() tea.Msg {
			snap := ctrl.Snapshot()
			path, err := bookfile.Write(dir, bookfile.FromFormData(snap.SessionID, snap.FormData))
			return DefinitionSavedMsg{Path: path, Err: err}
		}
		return m, save

	case DefinitionSavedMsg:
		if msg.Err != nil {
			logger.Error("tui: save book definition: %v", msg.Err)
			return m, nil
		}
		m.savedPath = msg.Path
		if m.summaryStep != nil {
			m.summaryStep.SetSavedPath(msg.Path)
		}
		return m, tea.Quit

	case widget.TabExitForwardMsg:
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusFirst()
		return m, nil

	case widget.TabExitBackwardMsg:
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusLast()
		return m, nil
	}

	// Forward messages to current step
	return m, m.updateCurrentStep(msg)
}

// enterStep is called after the controller moved to a new step: clear the
// button bar and build the step component.
func (m *Model) enterStep() tea.Cmd {
	m.buttonFocused = false
	m.buttonBar = nil
	return m.initCurrentStep()
}

// goBack retreats one step.
func (m *Model) goBack() (tea.Model, tea.Cmd) {
	if !m.ctrl.Retreat() {
		return m, nil
	}
	return m, m.enterStep()
}

// initCurrentStep builds the component for the controller's current step.
// Option steps whose metadata is stale trigger a background refetch first.
func (m *Model) initCurrentStep() tea.Cmd {
	snap := m.ctrl.Snapshot()
	step := snap.CurrentStep
	d := wizard.StepFor(step)

	var cmd tea.Cmd
	switch {
	case step == wizard.StepConcept:
		m.conceptStep = NewConceptStep(snap.FormData[catalog.KeyConcept], snap.FormData[wizard.KeyAdditionalNotes])
		cmd = m.conceptStep.Init()

	case d.HasOptions:
		if !snap.MetadataCurrent && snap.SessionID != "" {
			m.loading = true
			ctrl, ctx := m.ctrl, m.ctx
			fetch := func() tea.Msg {
				_, err := ctrl.SubmitStep(ctx, step, nil, "")
				return StepDataMsg{Err: err}
			}
			return tea.Batch(m.spin.Tick, fetch)
		}
		question := snap.Metadata.Question
		if question == "" {
			question = d.Question
		}
		m.optionStep = NewOptionStep(step, question, snap.Metadata.Options, snap.Metadata.LLMReasoning, snap.FormData[d.Key])
		cmd = m.optionStep.Init()

	case step == wizard.StepContent:
		m.prefsStep = NewPrefsStep(snap.FormData[catalog.KeyContent])
		cmd = m.prefsStep.Init()

	case step == wizard.StepSummary:
		m.summaryStep = NewSummaryStep(snap.FormData)
		if m.savedPath != "" {
			m.summaryStep.SetSavedPath(m.savedPath)
		}
		cmd = m.summaryStep.Init()
	}

	m.updateCurrentStepSize()
	return cmd
}

// updateCurrentStep forwards a message to the current step component.
func (m *Model) updateCurrentStep(msg tea.Msg) tea.Cmd {
	switch step := m.ctrl.CurrentStep(); {
	case step == wizard.StepConcept:
		if m.conceptStep != nil {
			return m.conceptStep.Update(msg)
		}
	case wizard.StepFor(step).HasOptions:
		if m.optionStep != nil {
			return m.optionStep.Update(msg)
		}
	case step == wizard.StepContent:
		if m.prefsStep != nil {
			return m.prefsStep.Update(msg)
		}
	case step == wizard.StepSummary:
		if m.summaryStep != nil {
			return m.summaryStep.Update(msg)
		}
	}
	return nil
}

// focusStepContent returns keyboard focus to the current step component.
func (m *Model) focusStepContent() tea.Cmd {
	if m.buttonBar != nil {
		m.buttonBar.Blur()
	}
	switch step := m.ctrl.CurrentStep(); {
	case step == wizard.StepConcept:
		if m.conceptStep != nil {
			return m.conceptStep.Focus()
		}
	case wizard.StepFor(step).HasOptions:
		if m.optionStep != nil {
			return m.optionStep.Focus()
		}
	case step == wizard.StepContent:
		if m.prefsStep != nil {
			return m.prefsStep.Focus()
		}
	case step == wizard.StepSummary:
		if m.summaryStep != nil {
			return m.summaryStep.Focus()
		}
	}
	return nil
}

// blurStepContent removes keyboard focus from the current step component.
func (m *Model) blurStepContent() {
	switch step := m.ctrl.CurrentStep(); {
	case step == wizard.StepConcept:
		if m.conceptStep != nil {
			m.conceptStep.Blur()
		}
	case wizard.StepFor(step).HasOptions:
		if m.optionStep != nil {
			m.optionStep.Blur()
		}
	case step == wizard.StepContent:
		if m.prefsStep != nil {
			m.prefsStep.Blur()
		}
	case step == wizard.StepSummary:
		if m.summaryStep != nil {
			m.summaryStep.Blur()
		}
	}
}

// ensureButtonBar builds the button bar for the current step if needed.
func (m *Model) ensureButtonBar() {
	if m.buttonBar != nil {
		return
	}
	step := m.ctrl.CurrentStep()
	switch {
	case step == wizard.StepConcept:
		valid := m.conceptStep != nil && m.conceptStep.Valid()
		m.buttonBar = widget.NewButtonBar(widget.CreateCancelNextButtons(valid, "Next"))
	case step == wizard.StepSummary:
		m.buttonBar = widget.NewButtonBar(widget.CreateBackNextButtons(true, true, "Save & Finish"))
	default:
		m.buttonBar = widget.NewButtonBar(widget.CreateBackNextButtons(true, m.ctrl.CanProceed() || wizard.StepFor(step).HasOptions, "Next"))
	}
	m.buttonBar.SetWidth(modalContentWidth)
}

// activateButton dispatches a button press.
func (m *Model) activateButton(label string) (tea.Model, tea.Cmd) {
	switch label {
	case "Cancel":
		m.cancelled = true
		return m, tea.Quit
	case "← Back":
		return m.goBack()
	case "Next":
		return m, m.submitCurrentStep()
	case "Save & Finish":
		return m, func() tea.Msg { return FinishMsg{} }
	}
	return m, nil
}

// submitCurrentStep asks the current step component to submit its value.
func (m *Model) submitCurrentStep() tea.Cmd {
	switch step := m.ctrl.CurrentStep(); {
	case step == wizard.StepConcept:
		if m.conceptStep != nil {
			return m.conceptStep.Submit()
		}
	case wizard.StepFor(step).HasOptions:
		if m.optionStep != nil {
			return m.optionStep.Submit()
		}
	case step == wizard.StepContent:
		if m.prefsStep != nil {
			return m.prefsStep.Submit()
		}
	}
	return nil
}

// updateCurrentStepSize pushes the modal content size into the current step.
func (m *Model) updateCurrentStepSize() {
	w, h := m.getModalContentSize()
	if m.conceptStep != nil {
		m.conceptStep.SetSize(w, h)
	}
	if m.optionStep != nil {
		m.optionStep.SetSize(w, h)
	}
	if m.prefsStep != nil {
		m.prefsStep.SetSize(w, h)
	}
	if m.summaryStep != nil {
		m.summaryStep.SetSize(w, h)
	}
}

// getModalContentSize returns the internal content dimensions for the modal.
func (m *Model) getModalContentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4
	if height < 20 {
		height = 20
	}
	if height > 40 {
		height = 40
	}
	height -= 10
	if height < 10 {
		height = 10
	}
	return width, height
}

// View renders the wizard.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderCurrentStep()

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderCurrentStep renders the modal for the current step.
func (m *Model) renderCurrentStep() string {
	t := theme.Current()
	snap := m.ctrl.Snapshot()
	d := wizard.StepFor(snap.CurrentStep)

	title := t.S().HeaderTitle.Render(
		fmt.Sprintf("Book Wizard · Step %d of %d: %s", snap.CurrentStep, wizard.TotalSteps, d.Title))
	progress := m.renderProgress(snap.CurrentStep)

	var body string
	switch {
	case m.loading:
		body = m.spin.View() + " " + t.S().Muted.Render("Thinking about your book...")
	case snap.CurrentStep == wizard.StepConcept && m.conceptStep != nil:
		body = m.conceptStep.View()
	case d.HasOptions && m.optionStep != nil:
		body = m.optionStep.View()
	case snap.CurrentStep == wizard.StepContent && m.prefsStep != nil:
		body = m.prefsStep.View()
	case snap.CurrentStep == wizard.StepSummary && m.summaryStep != nil:
		body = m.summaryStep.View()
	}

	parts := []string{title, progress, ""}
	if snap.Status == wizard.StatusError && snap.LastError != "" {
		parts = append(parts, t.S().ErrorBanner.Render("✗ "+snap.LastError), "")
	}
	parts = append(parts, body)

	if !m.loading {
		m.ensureButtonBar()
		parts = append(parts, "", m.buttonBar.Render())
	}

	hint := t.S().Muted.Render("tab to navigate • esc to go back • ctrl+c to quit")
	parts = append(parts, "", hint)

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(1, modalPadding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderProgress draws one dot per step, filled up to the current step.
func (m *Model) renderProgress(current int) string {
	t := theme.Current()
	var b strings.Builder
	for i := 1; i <= wizard.TotalSteps; i++ {
		color := t.FgMuted
		dot := "○"
		if i <= current {
			dot = "●"
			color = theme.InterpolateColor(t.Secondary, t.Primary, float64(i-1)/float64(wizard.TotalSteps-1))
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(dot))
		if i < wizard.TotalSteps {
			b.WriteString(" ")
		}
	}
	return b.String()
}
