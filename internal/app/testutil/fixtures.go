package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Backend payloads in each shape the normalizer accepts
const (
	VerbosePayload   = `{"text":"hi there","segments":[{"start":0.0,"text":"hi"},{"start":1.2,"text":"there"}]}`
	StreamingPayload = `{"results":[{"alternatives":[{"transcript":"hello world","words":[{"speakerTag":1}]}],"audioProcessed":2.6}]}`
	FullTextPayload  = `{"text":"fallback"}`
)

// WriteScript writes an executable /bin/sh script into a test temp dir and
// returns its path. The test is skipped where no POSIX shell exists.
func WriteScript(t testing.TB, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}
