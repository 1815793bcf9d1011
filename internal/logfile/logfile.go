// Package logfile acquires sprint logs from files and stdin.
package logfile

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Read loads a sprint log from the given file path. A single trailing
// newline is stripped; every character before it is log data, valid or not.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return trimTrailingNewline(string(data)), nil
}

// ReadStdin reads a sprint log from r until EOF.
func ReadStdin(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return trimTrailingNewline(string(data)), nil
}

func trimTrailingNewline(log string) string {
	log = strings.TrimSuffix(log, "\n")
	return strings.TrimSuffix(log, "\r")
}
