// Package data writes command results to the data channel (stdout).
// Log messages go to stderr through pkg/logger; the data channel stays
// clean so pipelines and workflow steps can consume it.
package data

import (
	"fmt"
	"io"
	"os"
	"sync"

	u "github.com/cloudposse/pathfilter/pkg/utils"
)

var (
	writerMu sync.RWMutex
	writer   io.Writer = os.Stdout
)

// SetWriter redirects the data channel. Tests use this to capture output.
func SetWriter(w io.Writer) {
	writerMu.Lock()
	defer writerMu.Unlock()
	writer = w
}

func getWriter() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return writer
}

// Write writes content to the data channel.
func Write(content string) error {
	_, err := fmt.Fprint(getWriter(), content)
	return err
}

// Writef writes formatted content to the data channel.
func Writef(format string, a ...interface{}) error {
	_, err := fmt.Fprintf(getWriter(), format, a...)
	return err
}

// Writeln writes content followed by a newline to the data channel.
func Writeln(content string) error {
	return Write(content + "\n")
}

// WriteJSON marshals v to indented JSON and writes it to the data channel.
func WriteJSON(v interface{}) error {
	output, err := u.ConvertToJSONIndented(v)
	if err != nil {
		return err
	}
	return Write(output + "\n")
}
