package logfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadStripsSingleTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
		want string
	}{
		{"plain", "AABBB", "AABBB"},
		{"trailing newline", "AABBB\n", "AABBB"},
		{"crlf", "AABBB\r\n", "AABBB"},
		{"inner newline kept", "AA\nBBB\n", "AA\nBBB"},
		{"empty", "", ""},
		{"newline only", "\n", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".log")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			got, err := Read(path)
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Read = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.log")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadStdin(t *testing.T) {
	got, err := ReadStdin(strings.NewReader("ABABA\n"))
	if err != nil {
		t.Fatalf("read stdin: %v", err)
	}
	if got != "ABABA" {
		t.Fatalf("ReadStdin = %q, want %q", got, "ABABA")
	}
}
