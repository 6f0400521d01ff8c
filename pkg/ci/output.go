package ci

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputWriter writes CI outputs (workflow variables, job summaries).
type OutputWriter interface {
	// WriteOutput writes a key-value pair to CI outputs (e.g., $GITHUB_OUTPUT).
	WriteOutput(key, value string) error

	// WriteSummary writes content to the job summary (e.g., $GITHUB_STEP_SUMMARY).
	WriteSummary(content string) error
}

// NewOutputWriterFromEnv picks the writer for the current runner:
// $GITHUB_OUTPUT when present, the legacy ::set-output protocol inside CI
// without it, and a no-op outside CI.
func NewOutputWriterFromEnv() OutputWriter {
	if outputPath := os.Getenv("GITHUB_OUTPUT"); outputPath != "" {
		return NewFileOutputWriter(outputPath, os.Getenv("GITHUB_STEP_SUMMARY"))
	}

	if Detect() {
		return &LegacyOutputWriter{Out: os.Stdout}
	}

	return &NoopOutputWriter{}
}

// NoopOutputWriter is an OutputWriter that does nothing.
// Used when not running in CI.
type NoopOutputWriter struct{}

// WriteOutput implements OutputWriter.
func (w *NoopOutputWriter) WriteOutput(_, _ string) error {
	return nil
}

// WriteSummary implements OutputWriter.
func (w *NoopOutputWriter) WriteSummary(_ string) error {
	return nil
}

// FileOutputWriter writes outputs to a file (like $GITHUB_OUTPUT).
type FileOutputWriter struct {
	outputPath  string
	summaryPath string
}

// NewFileOutputWriter creates a new FileOutputWriter.
func NewFileOutputWriter(outputPath, summaryPath string) *FileOutputWriter {
	return &FileOutputWriter{
		outputPath:  outputPath,
		summaryPath: summaryPath,
	}
}

// WriteOutput writes a key-value pair to the output file.
// Format: key=value (single line) or key<<EOF\nvalue\nEOF (multiline).
func (w *FileOutputWriter) WriteOutput(key, value string) error {
	if w.outputPath == "" {
		return nil
	}

	f, err := os.OpenFile(w.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	// Use heredoc format for multiline values.
	if strings.Contains(value, "\n") {
		delimiter := "EOF"
		// Ensure delimiter doesn't appear in value.
		for strings.Contains(value, delimiter) {
			delimiter += "_"
		}
		_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
	} else {
		_, err = fmt.Fprintf(f, "%s=%s\n", key, value)
	}

	return err
}

// WriteSummary appends content to the job summary file.
func (w *FileOutputWriter) WriteSummary(content string) error {
	if w.summaryPath == "" {
		return nil
	}

	f, err := os.OpenFile(w.summaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

// LegacyOutputWriter emits ::set-output workflow commands on stdout.
// Older runners without $GITHUB_OUTPUT still understand this protocol.
type LegacyOutputWriter struct {
	Out io.Writer
}

// WriteOutput implements OutputWriter.
func (w *LegacyOutputWriter) WriteOutput(key, value string) error {
	_, err := fmt.Fprintf(w.Out, "::set-output name=%s::%s\n", key, escapeData(value))
	return err
}

// WriteSummary implements OutputWriter. Legacy runners have no summary file,
// so the content is dropped.
func (w *LegacyOutputWriter) WriteSummary(_ string) error {
	return nil
}

// escapeData encodes a workflow command value per the runner's processing
// rules: percent signs and line breaks must be URL-style escaped.
func escapeData(value string) string {
	value = strings.ReplaceAll(value, "%", "%25")
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
