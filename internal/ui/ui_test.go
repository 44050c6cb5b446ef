package ui_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/ormlite-go/internal/ui"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr, prevColor := ui.Out, ui.Err, color.NoColor
	ui.Out, ui.Err = &out, &errOut
	color.NoColor = true
	t.Cleanup(func() {
		ui.Out, ui.Err = prevOut, prevErr
		color.NoColor = prevColor
	})
	return &out, &errOut
}

func TestFormatArgs(t *testing.T) {
	capture(t)
	assert.Equal(t, `[1: 18, 2: "Al", 3: NULL]`, ui.FormatArgs([]any{18, "Al", nil}))
	assert.Equal(t, "[]", ui.FormatArgs(nil))
}

func TestPrintStatement(t *testing.T) {
	out, _ := capture(t)
	ui.PrintStatement("adults", "SELECT * FROM `users` WHERE `age` > ?;", []any{18})

	assert.Contains(t, out.String(), "adults")
	assert.Contains(t, out.String(), "SELECT * FROM `users` WHERE `age` > ?;")
	assert.Contains(t, out.String(), "args: [1: 18]")
}

func TestPrintRows(t *testing.T) {
	out, _ := capture(t)
	require.NoError(t, ui.PrintRows([]string{"id", "name"}, [][]any{{int64(1), "Al"}, {int64(2), nil}}))

	s := out.String()
	assert.Contains(t, s, "id")
	assert.Contains(t, s, "Al")
	assert.Contains(t, s, "NULL")

	out.Reset()
	require.NoError(t, ui.PrintRows([]string{"id"}, nil))
	assert.Contains(t, out.String(), "(no rows)")
}

func TestMessages(t *testing.T) {
	out, errOut := capture(t)
	ui.PrintSuccess("compiled %d statements", 3)
	ui.PrintWarning("careful")
	ui.PrintError("failed: %s", "boom")
	ui.PrintList([]string{"a", "b"})

	assert.Contains(t, out.String(), "compiled 3 statements")
	assert.Contains(t, out.String(), "careful")
	assert.Contains(t, out.String(), "  • b")
	assert.Contains(t, errOut.String(), "failed: boom")
}
