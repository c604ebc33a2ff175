package widget

// TabExitForwardMsg is sent when Tab is pressed on a step's last input,
// asking the wizard to move focus to the button bar.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent when Shift+Tab is pressed on a step's first
// input, asking the wizard to move focus to the button bar from the end.
type TabExitBackwardMsg struct{}
