package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"error", ERROR},
		{"bogus", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn")
	l.SetOutput(&buf)

	l.Debugf("debug message")
	l.Infof("info message")
	l.Warnf("warn message")
	l.Errorf("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("Expected debug/info to be filtered at warn level, got:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("Expected warn/error to pass at warn level, got:\n%s", out)
	}
}

func TestPrintfLogsAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New("info")
	l.SetOutput(&buf)

	l.Printf("frame %d done\n", 3)

	out := buf.String()
	if !strings.Contains(out, "frame 3 done") {
		t.Errorf("Expected Printf output, got:\n%s", out)
	}
	if !strings.Contains(out, "[INFO ]") {
		t.Errorf("Expected INFO prefix, got:\n%s", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Expected trailing newline to be normalized, got %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("error")
	l.SetOutput(&buf)

	l.Infof("hidden")
	l.SetLevel("debug")
	l.Debugf("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info to be filtered at error level, got:\n%s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("Expected debug to pass after SetLevel, got:\n%s", out)
	}
}
