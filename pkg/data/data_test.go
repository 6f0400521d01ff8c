package data

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetWriter(&buf)
	t.Cleanup(func() { SetWriter(os.Stdout) })
	return &buf
}

func TestWrite(t *testing.T) {
	buf := captureOutput(t)

	require.NoError(t, Write("hello"))
	assert.Equal(t, "hello", buf.String())
}

func TestWritef(t *testing.T) {
	buf := captureOutput(t)

	require.NoError(t, Writef("%s=%d", "count", 3))
	assert.Equal(t, "count=3", buf.String())
}

func TestWriteln(t *testing.T) {
	buf := captureOutput(t)

	require.NoError(t, Writeln("hello"))
	assert.Equal(t, "hello\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	buf := captureOutput(t)

	require.NoError(t, WriteJSON(map[string]int{"count": 3}))
	assert.JSONEq(t, `{"count": 3}`, buf.String())
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}
