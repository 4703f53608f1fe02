package log

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
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if ValidLevel("bogus") {
		t.Error("ValidLevel(bogus) should be false")
	}
}

func TestJSONLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	Logger = NewJSONLogger(&buf, "debug")
	initComponentLoggers()
	t.Cleanup(Disable)

	Wallet.Info().Str("path", "m/44'").Msg("derived")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["component"] != "wallet" {
		t.Errorf("component = %v, want wallet", entry["component"])
	}
	if entry["message"] != "derived" {
		t.Errorf("message = %v, want derived", entry["message"])
	}
}

func TestJSONLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	Logger = NewJSONLogger(&buf, "warn")
	initComponentLoggers()
	t.Cleanup(Disable)

	RPC.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %s", buf.String())
	}
	RPC.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn message missing")
	}
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keykit.log")
	Output = &bytes.Buffer{}
	t.Cleanup(func() {
		Output = os.Stderr
		Disable()
	})

	if err := Init("info", true, path); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	CrossVal.Info().Msg("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"component":"crossval"`) {
		t.Errorf("file log missing component: %s", data)
	}
}
