package transcript

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

var (
	cookieLockTimeout = 5 * time.Second
	cookieLockRetry   = 50 * time.Millisecond
)

// ReadCookieFile parses a cookie file holding one Set-Cookie header value per
// line. Blank lines and lines starting with '#' are ignored. An unreadable
// file yields KindCookiePathInvalid; a line that does not parse yields
// KindCookiesInvalid.
//
// The file is read under a shared advisory lock so an exporter rewriting it
// concurrently cannot hand us half a file. A writer holding the lock longer
// than cookieLockTimeout yields KindCookiePathInvalid.
func ReadCookieFile(path string) ([]*http.Cookie, error) {
	path = strings.TrimSpace(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{Kind: KindCookiePathInvalid, Reason: fmt.Sprintf("stat %s: %v", path, err), Err: err}
	}
	if info.IsDir() {
		return nil, newError(KindCookiePathInvalid, "", fmt.Sprintf("%s is a directory", path))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cookieLockTimeout)
	defer cancel()
	lock := flock.New(path)
	locked, err := lock.TryRLockContext(ctx, cookieLockRetry)
	if !locked {
		if err == nil || ctx.Err() != nil {
			return nil, newError(KindCookiePathInvalid, "", fmt.Sprintf("cookie file is locked: %s", path))
		}
		return nil, &Error{Kind: KindCookiePathInvalid, Reason: fmt.Sprintf("lock %s: %v", path, err), Err: err}
	}
	defer lock.Unlock() //nolint:errcheck

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: KindCookiePathInvalid, Reason: fmt.Sprintf("read %s: %v", path, err), Err: err}
	}
	return parseCookieLines(data)
}

func parseCookieLines(data []byte) ([]*http.Cookie, error) {
	var cookies []*http.Cookie
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "Set-Cookie:"))
		cookie, err := http.ParseSetCookie(line)
		if err != nil {
			return nil, &Error{Kind: KindCookiesInvalid, Reason: fmt.Sprintf("line %d: %v", lineNo, err), Err: err}
		}
		cookies = append(cookies, cookie)
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Kind: KindCookiePathInvalid, Reason: err.Error(), Err: err}
	}
	return cookies, nil
}

// LoadCookieFile reads path and installs its cookies into the session.
func (s *Session) LoadCookieFile(path string) error {
	cookies, err := ReadCookieFile(path)
	if err != nil {
		return err
	}
	s.SetCookies(cookies)
	return nil
}
