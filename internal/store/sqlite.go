package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"minigames/internal/remote"
)

// SQLite persists session documents in a SQLite database. Watch
// notifications are in-process only; every accepted write through this
// store fans out to its own watchers.
type SQLite struct {
	db     *sql.DB
	notify *notifier
}

// NewSQLite opens (or creates) the database and runs migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite permits one writer at a time, and modernc's :memory:
	// database is private to its connection; a single pooled
	// connection keeps every query on the same database.
	db.SetMaxOpenConns(1)
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &SQLite{db: db, notify: newNotifier()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id             TEXT PRIMARY KEY,
			game_key       TEXT NOT NULL,
			player0        TEXT NOT NULL,
			player1        TEXT NOT NULL,
			state_json     TEXT NOT NULL,
			current_player TEXT NOT NULL,
			gameover_json  TEXT,
			rev            INTEGER NOT NULL DEFAULT 0,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS move_log (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq        INTEGER NOT NULL,
			action     TEXT NOT NULL,
			player     TEXT NOT NULL,
			at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (session_id, seq)
		);
	`)
	return err
}

func (s *SQLite) Create(ctx context.Context, doc *remote.Doc) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO sessions (id, game_key, player0, player1, state_json, current_player, rev)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`, doc.ID, doc.GameKey, doc.Players[0], doc.Players[1], string(doc.State), doc.Current)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return remote.ErrExists
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*remote.Doc, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, game_key, player0, player1, state_json, current_player, gameover_json, rev, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)
	doc := &remote.Doc{}
	var state string
	var gameover sql.NullString
	err := row.Scan(&doc.ID, &doc.GameKey, &doc.Players[0], &doc.Players[1],
		&state, &doc.Current, &gameover, &doc.Rev, &doc.CreatedAt, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, remote.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc.State = json.RawMessage(state)
	if gameover.Valid && gameover.String != "" {
		if err := json.Unmarshal([]byte(gameover.String), &doc.Gameover); err != nil {
			return nil, fmt.Errorf("decode gameover: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT action, player, at FROM move_log WHERE session_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e remote.MoveEntry
		if err := rows.Scan(&e.Action, &e.Player, &e.At); err != nil {
			return nil, err
		}
		doc.Moves = append(doc.Moves, e)
	}
	return doc, rows.Err()
}

func (s *SQLite) Update(ctx context.Context, doc *remote.Doc, expectRev int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var gameover any
	if doc.Gameover != nil {
		data, err := json.Marshal(doc.Gameover)
		if err != nil {
			return fmt.Errorf("encode gameover: %w", err)
		}
		gameover = string(data)
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE sessions
		SET state_json = ?, current_player = ?, gameover_json = ?, rev = rev + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND rev = ?
	`, string(doc.State), doc.Current, gameover, doc.ID, expectRev)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE id = ?", doc.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return remote.ErrNotFound
		}
		return remote.ErrConflict
	}

	// Append only the new tail of the move log.
	var have int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM move_log WHERE session_id = ?", doc.ID).Scan(&have); err != nil {
		return err
	}
	for seq := have; seq < len(doc.Moves); seq++ {
		e := doc.Moves[seq]
		if e.At.IsZero() {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO move_log (session_id, seq, action, player) VALUES (?, ?, ?, ?)",
				doc.ID, seq, e.Action, e.Player)
		} else {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO move_log (session_id, seq, action, player, at) VALUES (?, ?, ?, ?, ?)",
				doc.ID, seq, e.Action, e.Player, e.At)
		}
		if err != nil {
			return fmt.Errorf("append move log: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if fresh, err := s.Get(ctx, doc.ID); err == nil {
		s.notify.publish(doc.ID, fresh)
	}
	return nil
}

func (s *SQLite) Watch(ctx context.Context, id string) (<-chan *remote.Doc, error) {
	return s.notify.watch(ctx, id), nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
