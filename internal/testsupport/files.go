package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes contents to path, creating parent directories, and
// returns the path.
func WriteFile(t testing.TB, path, contents string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteCookieFile writes one Set-Cookie header value per line into a temp
// cookie file and returns its path.
func WriteCookieFile(t testing.TB, lines ...string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(t.TempDir(), "cookies.txt"), strings.Join(lines, "\n")+"\n")
}
