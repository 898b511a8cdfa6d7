// Package session keeps the backend session alive across CLI runs: it saves
// the cookie jar into a local SQLite database and reads the signed-in user
// from the access token cookie.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/migrations"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Store persists session cookies.
type Store struct {
	db      *sql.DB
	cookies cookies.Repository
	now     func() time.Time
}

// RunMigrations brings the session schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the session database at dsn and migrates
// it. dsn is a file path or any modernc.org/sqlite DSN.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if isFilePath(dsn) {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:      db,
		cookies: cookies.NewSQLiteRepository(db),
		now:     time.Now,
	}, nil
}

func isFilePath(dsn string) bool {
	return dsn != "" && !strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, ":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Restore loads stored cookies into jar for u and returns how many it set.
func (s *Store) Restore(ctx context.Context, jar http.CookieJar, u *url.URL) (int, error) {
	stored, err := s.cookies.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(stored) == 0 {
		return 0, nil
	}

	hc := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		hc = append(hc, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(u, hc)
	return len(hc), nil
}

// Save replaces the stored cookies with what jar currently holds for u.
func (s *Store) Save(ctx context.Context, jar http.CookieJar, u *url.URL) error {
	now := s.now().UTC()
	hc := jar.Cookies(u)

	cs := make([]cookies.Cookie, 0, len(hc))
	for _, c := range hc {
		cs = append(cs, cookies.Cookie{Name: c.Name, Value: c.Value, SavedAt: now})
	}
	return s.cookies.ReplaceAll(ctx, cs)
}

// Clear forgets the stored session.
func (s *Store) Clear(ctx context.Context) error {
	return s.cookies.Clear(ctx)
}

// Expire drops every cookie jar holds for u.
func Expire(jar http.CookieJar, u *url.URL) {
	hc := jar.Cookies(u)
	if len(hc) == 0 {
		return
	}
	gone := make([]*http.Cookie, 0, len(hc))
	for _, c := range hc {
		gone = append(gone, &http.Cookie{Name: c.Name, Path: "/", MaxAge: -1})
	}
	jar.SetCookies(u, gone)
}
