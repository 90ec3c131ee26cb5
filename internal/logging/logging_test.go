package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	if err != nil || lvl != zerolog.InfoLevel {
		t.Fatalf("ParseLevel(\"\") = %v, %v, want info", lvl, err)
	}
	lvl, err = ParseLevel("debug")
	if err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("ParseLevel(debug) = %v, %v, want debug", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("ParseLevel(loud) returned nil error")
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, JSON, zerolog.InfoLevel)
	log.Debug().Msg("hidden")
	log.Info().Str("tier", "Saver").Msg("submitted")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1 (debug filtered): %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["message"] != "submitted" || entry["tier"] != "Saver" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNew_ConsoleNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Console, zerolog.InfoLevel)
	log.Info().Msg("hello")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("console output to a buffer contains ANSI codes: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("console output = %q, want message", buf.String())
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tui.log")
	log, f, err := NewFile(path, zerolog.InfoLevel)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	log.Info().Msg("started")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"message":"started"`) {
		t.Fatalf("log file = %q", data)
	}
}
