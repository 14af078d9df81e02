package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteSerialFile writes a serial-number input file with one serial per line
// and returns its path. withBOM prepends the UTF-8 byte order mark that
// spreadsheet exports carry.
func WriteSerialFile(t testing.TB, serials []string, withBOM bool) string {
	t.Helper()

	var content strings.Builder
	if withBOM {
		content.WriteString("\ufeff")
	}
	for _, serial := range serials {
		content.WriteString(serial)
		content.WriteString("\n")
	}

	path := filepath.Join(t.TempDir(), "numbers.csv")
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("write serial file %s: %v", path, err)
	}
	return path
}
