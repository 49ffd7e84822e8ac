package ui

import (
	"os"
	"testing"
)

// TestMain stubs the clipboard so no test in the ui package touches the
// real one.
func TestMain(m *testing.M) {
	restore := StubClipboard(nil)
	code := m.Run()
	restore()
	os.Exit(code)
}
