// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/allisson/rotator-admin/internal/app"
	apperrors "github.com/allisson/rotator-admin/internal/errors"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// CloseContainer closes all resources in the container and logs any errors.
func CloseContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// ParseID parses a positive numeric resource identifier.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid id %q", value)
	}
	return id, nil
}

// validateFormat rejects output formats other than text and json.
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid format: %s (valid options: text, json)", format)
	}
}

// writeRaw writes the response body indented, as received.
func writeRaw(writer io.Writer, raw json.RawMessage) error {
	var out bytes.Buffer
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, _ = fmt.Fprintln(writer, out.String())
	return nil
}

// writeJSON marshals value as indented JSON.
func writeJSON(writer io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, _ = fmt.Fprintln(writer, string(data))
	return nil
}

// prompt writes label and reads one trimmed line from reader.
func prompt(reader *bufio.Reader, writer io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(writer, label)
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func yesNo(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}

func deref(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}
