// This file is part of Gophertas.
//
// Gophertas is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophertas is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophertas.  If not, see <https://www.gnu.org/licenses/>.

package synccheck

import (
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jetsetilly/gophertas/curated"

	_ "modernc.org/sqlite"
)

// Sentinel error patterns.
const (
	JournalError = "journal: %v"
	NoRun        = "journal: no run with id %s"
)

// Status of a run.
type Status string

// List of valid Status values.
const (
	StatusRunning     Status = "running"
	StatusSuccess     Status = "success"
	StatusNotFinished Status = "not finished"
	StatusUnsafe      Status = "unsafe action"
	StatusHalted      Status = "host halted"
	StatusParseFailed Status = "parse failed"
)

// Entry in the journal.
type Entry struct {
	ID       uuid.UUID
	Script   string
	Checksum string
	Started  time.Time
	Finished time.Time
	Frame    int
	Total    int
	Reason   string
	Status   Status
}

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	script TEXT NOT NULL,
	checksum TEXT NOT NULL,
	started INTEGER NOT NULL,
	finished INTEGER NOT NULL DEFAULT 0,
	frame INTEGER NOT NULL DEFAULT 0,
	total INTEGER NOT NULL DEFAULT 0,
	reason TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL
)`

// Journal of runs.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMilli(v).UTC()
}

// Open the journal at path. The database is created if it does not exist.
func Open(path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, curated.Errorf(JournalError, "path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, curated.Errorf(JournalError, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, curated.Errorf(JournalError, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, curated.Errorf(JournalError, err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

// Close the journal.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	if err := j.db.Close(); err != nil {
		return curated.Errorf(JournalError, err)
	}
	return nil
}

// Begin a new run of the script.
func (j *Journal) Begin(script string, checksum string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := j.db.Exec(
		`INSERT INTO runs (id, script, checksum, started, status) VALUES (?, ?, ?, ?, ?)`,
		id.String(), script, checksum, toMillis(j.now()), string(StatusRunning),
	)
	if err != nil {
		return uuid.Nil, curated.Errorf(JournalError, err)
	}
	return id, nil
}

// Finish the run. The frame is the frame playback had reached out of a total
// number of frames.
func (j *Journal) Finish(id uuid.UUID, frame int, total int, reason string, status Status) error {
	res, err := j.db.Exec(
		`UPDATE runs SET finished = ?, frame = ?, total = ?, reason = ?, status = ? WHERE id = ?`,
		toMillis(j.now()), frame, total, reason, string(status), id.String(),
	)
	if err != nil {
		return curated.Errorf(JournalError, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return curated.Errorf(NoRun, id)
	}
	return nil
}

// List every run in the order they were started.
func (j *Journal) List() ([]Entry, error) {
	rows, err := j.db.Query(`SELECT id, script, checksum, started, finished, frame, total, reason, status FROM runs ORDER BY started, rowid`)
	if err != nil {
		return nil, curated.Errorf(JournalError, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var id, status string
		var started, finished int64
		err := rows.Scan(&id, &e.Script, &e.Checksum, &started, &finished, &e.Frame, &e.Total, &e.Reason, &status)
		if err != nil {
			return nil, curated.Errorf(JournalError, err)
		}
		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, curated.Errorf(JournalError, err)
		}
		e.Started = fromMillis(started)
		e.Finished = fromMillis(finished)
		e.Status = Status(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, curated.Errorf(JournalError, err)
	}

	return entries, nil
}
