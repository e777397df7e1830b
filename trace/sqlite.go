// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS signals (
	id    INTEGER PRIMARY KEY,
	name  TEXT NOT NULL UNIQUE,
	width INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	cycle  INTEGER NOT NULL,
	signal INTEGER NOT NULL REFERENCES signals(id),
	value  INTEGER NOT NULL,
	PRIMARY KEY (cycle, signal)
);
`

// SQLiteSink stores value changes in an SQLite database, one row per signal
// change in table samples(cycle, signal, value). Signal names and widths are
// stored in table signals(id, name, width).
//
// Values are stored as 64 bits signed integers. 64 bits values with the most
// significant bit set read back as negative numbers in SQL queries; Values
// converts them back.
//
type SQLiteSink struct {
	ctx context.Context
	db  *sql.DB
	ids []int64
}

// OpenSQLiteSink opens or creates the database at dsn. A dsn of ":memory:"
// creates an in-memory database. ctx is used for all subsequent statements.
//
// Previous samples of a signal are deleted when it is traced again.
//
func OpenSQLiteSink(ctx context.Context, dsn string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open trace database")
	}
	db.SetMaxOpenConns(1)
	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create trace schema")
	}
	return &SQLiteSink{ctx: ctx, db: db}, nil
}

// Begin implements Sink.
//
func (s *SQLiteSink) Begin(signals []Signal) error {
	tx, err := s.db.BeginTx(s.ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	s.ids = make([]int64, len(signals))
	for i, sig := range signals {
		if _, err = tx.ExecContext(s.ctx,
			`INSERT INTO signals(name, width) VALUES(?, ?)
			 ON CONFLICT(name) DO UPDATE SET width = excluded.width`, sig.Name, sig.Width); err != nil {
			return errors.Wrapf(err, "declare signal %s", sig.Name)
		}
		if err = tx.QueryRowContext(s.ctx, `SELECT id FROM signals WHERE name = ?`, sig.Name).Scan(&s.ids[i]); err != nil {
			return errors.Wrapf(err, "declare signal %s", sig.Name)
		}
		if _, err = tx.ExecContext(s.ctx, `DELETE FROM samples WHERE signal = ?`, s.ids[i]); err != nil {
			return errors.Wrapf(err, "clear signal %s", sig.Name)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

// Record implements Sink.
//
func (s *SQLiteSink) Record(cycle uint64, changes []Change) error {
	tx, err := s.db.BeginTx(s.ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(s.ctx,
		`INSERT OR REPLACE INTO samples(cycle, signal, value) VALUES(?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare")
	}
	defer stmt.Close()
	for _, c := range changes {
		if _, err = stmt.ExecContext(s.ctx, int64(cycle), s.ids[c.Signal], int64(c.Value)); err != nil {
			return errors.Wrap(err, "insert sample")
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

// A Sample is a recorded value change.
//
type Sample struct {
	Cycle uint64
	Value uint64
}

// Values returns the recorded changes of the named signal in cycle order.
//
func (s *SQLiteSink) Values(signal string) ([]Sample, error) {
	rows, err := s.db.QueryContext(s.ctx,
		`SELECT s.cycle, s.value FROM samples s JOIN signals g ON g.id = s.signal
		 WHERE g.name = ? ORDER BY s.cycle`, signal)
	if err != nil {
		return nil, errors.Wrapf(err, "query signal %s", signal)
	}
	defer rows.Close()
	var out []Sample
	for rows.Next() {
		var cycle, value int64
		if err = rows.Scan(&cycle, &value); err != nil {
			return nil, errors.Wrapf(err, "scan signal %s", signal)
		}
		out = append(out, Sample{Cycle: uint64(cycle), Value: uint64(value)})
	}
	return out, errors.Wrapf(rows.Err(), "query signal %s", signal)
}

// Close implements Sink.
//
func (s *SQLiteSink) Close() error {
	return errors.Wrap(s.db.Close(), "close trace database")
}
