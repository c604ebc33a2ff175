package tui

// ConceptSubmittedMsg is sent when the user submits the book concept.
type ConceptSubmittedMsg struct {
	Concept string
	Notes   string
}

// OptionChosenMsg is sent when the user picks an option on a selection step.
type OptionChosenMsg struct {
	Step      int
	Selection string
}

// PrefsSubmittedMsg is sent when the user submits content preferences.
type PrefsSubmittedMsg struct {
	Text string
}

// SessionStartedMsg reports the result of the start call.
type SessionStartedMsg struct {
	Err error
}

// StepAdvancedMsg reports the result of a submit-and-advance sequence.
type StepAdvancedMsg struct {
	Err error
}

// StepDataMsg reports that the current step's metadata was (re)fetched.
type StepDataMsg struct {
	Err error
}

// GoBackMsg is sent when the user activates the Back button.
type GoBackMsg struct{}

// FinishMsg is sent when the user accepts the summary.
type FinishMsg struct{}

// DefinitionSavedMsg reports the book definition export result.
type DefinitionSavedMsg struct {
	Path string
	Err  error
}
