// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

var (
	drvName = "mysql"
)

// DSN returns the MySQL data source name to connect to the database
// dbname, hosted at addr, as user usr.
func DSN(usr, pwd, addr, dbname string) string {
	cfg := mysql.NewConfig()
	cfg.User = usr
	cfg.Passwd = pwd
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = dbname
	return cfg.FormatDSN()
}

// DB retrieves reference binnings from a SQL database.
//
// Bins are stored, one per row, in the table:
//
//	refbins(analysis TEXT, d INT, x INT, y INT, idx INT, xlow DOUBLE, xhigh DOUBLE)
type DB struct {
	db *sql.DB
}

// OpenDB opens a connection to the reference database described by dsn.
func OpenDB(dsn string) (*DB, error) {
	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("refdata: could not open db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("refdata: could not ping db: %w", err)
	}

	return &DB{db: db}, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) Edges(ana string, id ID) ([]float64, error) {
	return db.EdgesContext(context.Background(), ana, id)
}

// EdgesContext returns the sorted bin edges of the dataset id of analysis ana.
func (db *DB) EdgesContext(ctx context.Context, ana string, id ID) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := db.db.QueryContext(
		ctx,
		"SELECT xlow, xhigh FROM refbins WHERE analysis=? AND d=? AND x=? AND y=? ORDER BY idx",
		ana, id.D, id.X, id.Y,
	)
	if err != nil {
		return nil, fmt.Errorf("refdata: could not query bins of %q: %w", RefPath(ana, id), err)
	}
	defer rows.Close()

	var lo, hi []float64
	for rows.Next() {
		var xlo, xhi float64
		err = rows.Scan(&xlo, &xhi)
		if err != nil {
			return nil, fmt.Errorf("refdata: could not scan bin of %q: %w", RefPath(ana, id), err)
		}
		lo = append(lo, xlo)
		hi = append(hi, xhi)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("refdata: could not scan db for %q: %w", RefPath(ana, id), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("refdata: context error while retrieving %q: %w", RefPath(ana, id), err)
	}

	if len(lo) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNotFound, RefPath(ana, id))
	}

	edges, err := EdgesFrom(lo, hi)
	if err != nil {
		return nil, fmt.Errorf("refdata: invalid binning for %q: %w", RefPath(ana, id), err)
	}
	return edges, nil
}

var (
	_ Lookup = (*DB)(nil)
)
