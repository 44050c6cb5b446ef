package debug_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/satishbabariya/ormlite-go/internal/debug"
)

func TestLogger(t *testing.T) {
	t.Cleanup(func() { debug.Init(false) })

	debug.Init(false)
	assert.False(t, debug.Enabled())

	var buf bytes.Buffer
	debug.SetOutput(&buf)
	assert.True(t, debug.Enabled())

	debug.Debug("executing statement", "sql", "SELECT 1;")
	debug.Warn("slow", "ms", 250)
	assert.Contains(t, buf.String(), `msg="executing statement" sql="SELECT 1;"`)
	assert.Contains(t, buf.String(), "level=WARN msg=slow ms=250")

	debug.Init(false)
	buf.Reset()
	debug.Error("dropped")
	assert.Empty(t, buf.String())
}
