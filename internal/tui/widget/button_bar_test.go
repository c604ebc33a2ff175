package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusSkipsDisabled(t *testing.T) {
	bar := NewButtonBar([]Button{
		{Label: "← Back", State: ButtonDisabled},
		{Label: "Next", State: ButtonNormal},
	})

	bar.FocusFirst()
	assert.Equal(t, "Next", bar.FocusedButton())

	assert.False(t, bar.FocusNext(), "focus should run off the end")
	assert.Empty(t, bar.FocusedButton())
}

func TestFocusTraversal(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(true, true, "Next"))

	bar.FocusFirst()
	assert.Equal(t, "← Back", bar.FocusedButton())

	assert.True(t, bar.FocusNext())
	assert.Equal(t, "Next", bar.FocusedButton())

	assert.True(t, bar.FocusPrev())
	assert.Equal(t, "← Back", bar.FocusedButton())

	assert.False(t, bar.FocusPrev(), "focus should run off the front")

	bar.FocusLast()
	assert.Equal(t, "Next", bar.FocusedButton())
}

func TestCreateBackNextButtons(t *testing.T) {
	buttons := CreateBackNextButtons(false, true, "Finish")
	assert.Equal(t, ButtonDisabled, buttons[0].State)
	assert.Equal(t, ButtonNormal, buttons[1].State)
	assert.Equal(t, "Finish", buttons[1].Label)
}

func TestRenderNonEmpty(t *testing.T) {
	bar := NewButtonBar(CreateCancelNextButtons(true, "Next"))
	bar.SetWidth(40)
	out := bar.Render()
	assert.Contains(t, out, "Cancel")
	assert.Contains(t, out, "Next")
}
