package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maskmeta.log")
	l := New(Config{Logfile: path, MaxSize: 1, MaxAge: 1})

	l.Debugf("hidden %d", 1)
	l.Infof("built %d columns", 27)
	l.Warningf("radius %d", 2)
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "hidden") {
		t.Errorf("Debug message written without verbose mode")
	}
	if !strings.Contains(text, " INFO built 27 columns") {
		t.Errorf("Expected info line, got %q", text)
	}
	if !strings.Contains(text, " WARNING radius 2") {
		t.Errorf("Expected warning line, got %q", text)
	}
}

func TestSetMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.log")
	l := New(Config{Logfile: path, Verbose: true})
	l.SetMode(SilentMode)
	l.Errorf("dropped")
	l.Close()

	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Errorf("Expected no output in silent mode, got %q", data)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Warningf("a %s", "b")
	r.Infof("c")
	r.Warningf("d")

	if r.Count("WARNING") != 2 {
		t.Errorf("Expected 2 warnings, got %d", r.Count("WARNING"))
	}
	entries := r.Entries()
	if len(entries) != 3 || entries[0].Message != "a b" {
		t.Errorf("Unexpected entries %+v", entries)
	}
}
