package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"
	"testing"
)

// capture redirects output to a buffer and restores the defaults when the
// test ends.
func capture(t *testing.T, verboseMode, jsonOutput bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetJSON(jsonOutput)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetJSON(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false, false)
	if IsVerbose() {
		t.Fatal("verbose should start off")
	}
	SetVerbose(true)
	if !IsVerbose() {
		t.Fatal("SetVerbose(true) did not stick")
	}
}

func TestConsoleOutput(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{"debug verbose", true, func() { Debug("test message %s", "arg") }, "[DEBUG] test message arg\n"},
		{"debug quiet", false, func() { Debug("test message") }, ""},
		{"info verbose", true, func() { Info("info message %d", 42) }, "[INFO] info message 42\n"},
		{"info quiet", false, func() { Info("hidden") }, ""},
		{"warn quiet", false, func() { Warn("calendar slow") }, "[WARN] calendar slow\n"},
		{"error quiet", false, func() { Error("email failed: %s", "535") }, "[ERROR] email failed: 535\n"},
		{"section verbose", true, func() { Section("Ranking") }, "\n=== Ranking ===\n"},
		{"section quiet", false, func() { Section("Ranking") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose, false)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONMode(t *testing.T) {
	buf := capture(t, true, true)

	Info("ingested %d chunks", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "ingested 3 chunks" || entry["level"] != "info" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("missing ts")
	}
}

func TestJSONMode_Section(t *testing.T) {
	buf := capture(t, true, true)

	Section("Booking")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["section"] != "Booking" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false, false)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(i%2 == 0)
			Debug("concurrent %d", i)
			_ = IsVerbose()
		}()
	}
	wg.Wait()
}

func TestProviderFields(t *testing.T) {
	fields := ProviderFields("llm", " gemini ", "")

	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldCapability || fields[0].String != "llm" {
		t.Errorf("unexpected capability field: %+v", fields[0])
	}
	if fields[1].Key != FieldProvider || fields[1].String != "gemini" {
		t.Errorf("unexpected provider field: %+v", fields[1])
	}
}
