package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const firefoxCookieQuery = `SELECT name, value, host, path, expiry, isSecure, isHttpOnly
FROM moz_cookies
WHERE host = ? OR host = ? OR host LIKE ?
ORDER BY id`

// ReadFirefoxCookies loads the cookies stored for domain (and its subdomains)
// from a Firefox cookies.sqlite profile database. The database is opened
// read-only and immutable so a running browser is not disturbed.
func ReadFirefoxCookies(ctx context.Context, dbPath, domain string) ([]*http.Cookie, error) {
	dbPath = strings.TrimSpace(dbPath)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, &Error{Kind: KindCookiePathInvalid, Reason: fmt.Sprintf("stat %s: %v", dbPath, err), Err: err}
	}
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro&immutable=1")
	if err != nil {
		return nil, &Error{Kind: KindCookiePathInvalid, Reason: fmt.Sprintf("open %s: %v", dbPath, err), Err: err}
	}
	defer db.Close()

	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), ".")
	rows, err := db.QueryContext(ctx, firefoxCookieQuery, domain, "."+domain, "%."+domain)
	if err != nil {
		return nil, &Error{Kind: KindCookiesInvalid, Reason: fmt.Sprintf("query moz_cookies: %v", err), Err: err}
	}
	defer rows.Close()

	var cookies []*http.Cookie
	for rows.Next() {
		var (
			name, value, host, path string
			expiry                  int64
			secure, httpOnly        int
		)
		if err := rows.Scan(&name, &value, &host, &path, &expiry, &secure, &httpOnly); err != nil {
			return nil, &Error{Kind: KindCookiesInvalid, Reason: fmt.Sprintf("scan moz_cookies: %v", err), Err: err}
		}
		cookie := &http.Cookie{
			Name:     name,
			Value:    value,
			Domain:   host,
			Path:     path,
			Secure:   secure != 0,
			HttpOnly: httpOnly != 0,
		}
		if expiry > 0 {
			cookie.Expires = firefoxExpiry(expiry)
		}
		cookies = append(cookies, cookie)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Kind: KindCookiesInvalid, Reason: fmt.Sprintf("read moz_cookies: %v", err), Err: err}
	}
	if len(cookies) == 0 {
		return nil, newError(KindCookiesInvalid, "", fmt.Sprintf("no cookies for %s in %s", domain, dbPath))
	}
	return cookies, nil
}

// Firefox has stored expiry both in seconds and, in newer profiles, in
// milliseconds.
func firefoxExpiry(value int64) time.Time {
	if value > 1e12 {
		return time.UnixMilli(value)
	}
	return time.Unix(value, 0)
}

// ImportFirefoxCookies installs the origin's cookies from a Firefox profile.
func (s *Session) ImportFirefoxCookies(ctx context.Context, dbPath string) error {
	cookies, err := ReadFirefoxCookies(ctx, dbPath, cookieDomain(s.base.Hostname()))
	if err != nil {
		return err
	}
	s.SetCookies(cookies)
	return nil
}
