package transcript

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"ytcaptions/internal/testsupport"
)

func TestReadCookieFile(t *testing.T) {
	path := testsupport.WriteCookieFile(t,
		"# exported cookies",
		"",
		"CONSENT=YES+cb; Path=/; Domain=.youtube.com",
		"Set-Cookie: SID=abc; Path=/; Secure; HttpOnly",
	)
	cookies, err := ReadCookieFile(path)
	if err != nil {
		t.Fatalf("ReadCookieFile: %v", err)
	}
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	if cookies[0].Name != "CONSENT" || cookies[0].Value != "YES+cb" || strings.TrimPrefix(cookies[0].Domain, ".") != "youtube.com" {
		t.Fatalf("unexpected first cookie: %+v", cookies[0])
	}
	if cookies[1].Name != "SID" || !cookies[1].Secure || !cookies[1].HttpOnly {
		t.Fatalf("unexpected second cookie: %+v", cookies[1])
	}
}

func TestReadCookieFileFailures(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		kind Kind
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.txt") }, KindCookiePathInvalid},
		{"directory", func(t *testing.T) string { return t.TempDir() }, KindCookiePathInvalid},
		{"malformed line", func(t *testing.T) string { return testsupport.WriteCookieFile(t, "ok=1", "not a cookie") }, KindCookiesInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCookieFile(tt.path(t))
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func withCookieLockTimeout(t *testing.T, d time.Duration) {
	t.Helper()
	prev := cookieLockTimeout
	cookieLockTimeout = d
	t.Cleanup(func() { cookieLockTimeout = prev })
}

func TestReadCookieFileRespectsWriterLock(t *testing.T) {
	path := testsupport.WriteCookieFile(t, "SID=abc; Path=/")
	writer := flock.New(path)
	locked, err := writer.TryLock()
	if err != nil || !locked {
		t.Fatalf("take exclusive lock: locked=%v err=%v", locked, err)
	}
	t.Cleanup(func() { _ = writer.Unlock() })

	withCookieLockTimeout(t, 100*time.Millisecond)
	cookies, err := ReadCookieFile(path)
	var terr *Error
	if !errors.As(err, &terr) || terr.Kind != KindCookiePathInvalid || !strings.Contains(terr.Reason, "cookie file is locked") {
		t.Fatalf("expected locked cookie file error, got cookies=%d err=%v", len(cookies), err)
	}

	withCookieLockTimeout(t, 5*time.Second)
	release := time.AfterFunc(150*time.Millisecond, func() { _ = writer.Unlock() })
	defer release.Stop()
	start := time.Now()
	cookies, err = ReadCookieFile(path)
	if err != nil {
		t.Fatalf("read after writer released: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Name != "SID" {
		t.Fatalf("unexpected cookies: %v", cookies)
	}
	if waited := time.Since(start); waited < 100*time.Millisecond {
		t.Fatalf("expected read to wait for the writer, returned after %v", waited)
	}
}

func TestLoadCookieFileReplaysCookies(t *testing.T) {
	platform := testsupport.NewPlatform(t)
	session, err := NewSession(SessionOptions{BaseURL: platform.URL()})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := session.LoadCookieFile(testsupport.WriteCookieFile(t, "SID=abc; Path=/")); err != nil {
		t.Fatalf("LoadCookieFile: %v", err)
	}
	if _, err := session.Do(context.Background(), Request{URL: session.WatchURL("abc12345678")}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	reqs := platform.Requests("/watch")
	if len(reqs) != 1 || !hasCookie(reqs[0], "SID", "abc") {
		t.Fatalf("expected SID cookie on watch request, got %+v", reqs)
	}
}

func hasCookie(req testsupport.Request, name, value string) bool {
	for _, c := range req.Cookies {
		if c.Name == name && c.Value == value {
			return true
		}
	}
	return false
}

func writeFirefoxDB(t *testing.T, rows ...[3]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE moz_cookies (
		id INTEGER PRIMARY KEY,
		name TEXT, value TEXT, host TEXT, path TEXT,
		expiry INTEGER, isSecure INTEGER, isHttpOnly INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	expiry := time.Now().Add(24 * time.Hour).Unix()
	for _, row := range rows {
		if _, err := db.Exec(`INSERT INTO moz_cookies (name, value, host, path, expiry, isSecure, isHttpOnly) VALUES (?, ?, ?, '/', ?, 0, 1)`,
			row[0], row[1], row[2], expiry); err != nil {
			t.Fatalf("insert cookie: %v", err)
		}
	}
	return path
}

func TestReadFirefoxCookiesFiltersDomain(t *testing.T) {
	path := writeFirefoxDB(t,
		[3]string{"SID", "a", ".youtube.com"},
		[3]string{"PREF", "b", "www.youtube.com"},
		[3]string{"OTHER", "c", ".example.com"},
		[3]string{"FAKE", "d", "notyoutube.com"},
	)
	cookies, err := ReadFirefoxCookies(context.Background(), path, "youtube.com")
	if err != nil {
		t.Fatalf("ReadFirefoxCookies: %v", err)
	}
	if len(cookies) != 2 || cookies[0].Name != "SID" || cookies[1].Name != "PREF" {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].Expires.IsZero() {
		t.Fatalf("expected flags and expiry carried over: %+v", cookies[0])
	}
}

func TestReadFirefoxCookiesFailures(t *testing.T) {
	ctx := context.Background()
	if _, err := ReadFirefoxCookies(ctx, filepath.Join(t.TempDir(), "missing.sqlite"), "youtube.com"); !errors.Is(err, KindCookiePathInvalid) {
		t.Fatalf("expected CookiePathInvalid, got %v", err)
	}
	empty := writeFirefoxDB(t, [3]string{"OTHER", "c", ".example.com"})
	if _, err := ReadFirefoxCookies(ctx, empty, "youtube.com"); !errors.Is(err, KindCookiesInvalid) {
		t.Fatalf("expected CookiesInvalid, got %v", err)
	}
	notDB := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "cookies.sqlite"), "plain text")
	if _, err := ReadFirefoxCookies(ctx, notDB, "youtube.com"); !errors.Is(err, KindCookiesInvalid) {
		t.Fatalf("expected CookiesInvalid for non-database file, got %v", err)
	}
}

func TestImportFirefoxCookiesReplaysOnPlatform(t *testing.T) {
	platform := testsupport.NewPlatform(t)
	session, err := NewSession(SessionOptions{BaseURL: platform.URL()})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	path := writeFirefoxDB(t, [3]string{"SID", "from-firefox", "127.0.0.1"})
	if err := session.ImportFirefoxCookies(context.Background(), path); err != nil {
		t.Fatalf("ImportFirefoxCookies: %v", err)
	}
	if _, err := session.Do(context.Background(), Request{URL: session.WatchURL("x")}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	reqs := platform.Requests("/watch")
	if len(reqs) != 1 || !hasCookie(reqs[0], "SID", "from-firefox") {
		t.Fatalf("expected imported cookie replayed, got %+v", reqs)
	}
}

func TestFirefoxExpiryUnits(t *testing.T) {
	seconds := int64(1_900_000_000)
	if got := firefoxExpiry(seconds); got.Unix() != seconds {
		t.Fatalf("seconds expiry = %v", got)
	}
	if got := firefoxExpiry(seconds * 1000); got.Unix() != seconds {
		t.Fatalf("millisecond expiry = %v", got)
	}
}
