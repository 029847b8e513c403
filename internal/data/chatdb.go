package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/repo"

	_ "modernc.org/sqlite"
)

var errNotMessageStore = errors.New("message or handle table missing")

const newMessagesQuery = `
	SELECT m.ROWID, m.date, m.text, m.is_from_me, h.id
	FROM message m
	LEFT OUTER JOIN handle h ON m.handle_id = h.ROWID
	WHERE m.date > ? AND m.is_from_me = 0
	ORDER BY m.date DESC
`

// chatDBRepo implements the message store connector over the Messages chat.db
type chatDBRepo struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewChatDBRepo creates a read-only message repository for the database at path
func NewChatDBRepo(path string) repo.MessageRepo {
	return &chatDBRepo{path: path}
}

// readOnlyDSN builds a sqlite URI that can never write to the store
func readOnlyDSN(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Add("_pragma", "query_only(1)")
	q.Add("_pragma", "busy_timeout(250)")
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: q.Encode()}
	return u.String()
}

// Connect opens the store and checks that it has the expected tables
func (r *chatDBRepo) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return nil
	}

	if _, err := os.Stat(r.path); err != nil {
		return &domain.ConnectionError{Path: r.path, Err: err}
	}

	db, err := sql.Open("sqlite", readOnlyDSN(r.path))
	if err != nil {
		return &domain.ConnectionError{Path: r.path, Err: err}
	}
	db.SetMaxOpenConns(1)

	var tables int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('message', 'handle')
	`).Scan(&tables)
	if err != nil {
		db.Close()
		return &domain.ConnectionError{Path: r.path, Err: err}
	}
	if tables != 2 {
		db.Close()
		return &domain.ConnectionError{Path: r.path, Err: errNotMessageStore}
	}

	r.db = db
	return nil
}

func (r *chatDBRepo) conn() (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil, errors.New("not connected")
	}
	return r.db, nil
}

// LatestTimestamp gets the date of the newest message in the store
func (r *chatDBRepo) LatestTimestamp(ctx context.Context) (int64, error) {
	db, err := r.conn()
	if err != nil {
		return 0, &domain.QueryError{Err: err}
	}

	var latest int64
	err = db.QueryRowContext(ctx, `SELECT COALESCE(MAX(date), 0) FROM message`).Scan(&latest)
	if err != nil {
		return 0, &domain.QueryError{Err: fmt.Errorf("latest message date: %w", err)}
	}
	return latest, nil
}

// Since gets messages from other senders newer than watermarkMs, newest first
func (r *chatDBRepo) Since(ctx context.Context, watermarkMs int64) ([]domain.MessageRecord, error) {
	db, err := r.conn()
	if err != nil {
		return nil, &domain.QueryError{Since: watermarkMs, Err: err}
	}

	rows, err := db.QueryContext(ctx, newMessagesQuery, watermarkMs)
	if err != nil {
		return nil, &domain.QueryError{Since: watermarkMs, Err: err}
	}
	defer rows.Close()

	var records []domain.MessageRecord
	for rows.Next() {
		var (
			rec      domain.MessageRecord
			text     sql.NullString
			fromSelf int64
			sender   sql.NullString
		)
		if err := rows.Scan(&rec.RowID, &rec.TimestampMs, &text, &fromSelf, &sender); err != nil {
			return nil, &domain.QueryError{Since: watermarkMs, Err: fmt.Errorf("scan message: %w", err)}
		}
		if text.Valid {
			s := text.String
			rec.Text = &s
		}
		rec.FromSelf = fromSelf != 0
		rec.SenderID = domain.UnknownSender
		if sender.Valid && sender.String != "" {
			rec.SenderID = sender.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.QueryError{Since: watermarkMs, Err: err}
	}

	return records, nil
}

// Path returns the store location
func (r *chatDBRepo) Path() string {
	return r.path
}

// Close closes the database connection
func (r *chatDBRepo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}
