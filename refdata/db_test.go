// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refdata

import (
	"context"
	"database/sql/driver"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-lpc/star/internal/fakedb"
)

func init() {
	drvName = "fakedb"
}

func TestDSN(t *testing.T) {
	got := DSN("star", "s3cr3t", "localhost:3306", "refdata")
	if want := "star:s3cr3t@tcp(localhost:3306)/refdata"; !strings.HasPrefix(got, want) {
		t.Fatalf("invalid DSN: got=%q, want=%q", got, want)
	}
}

func TestDB(t *testing.T) {
	db, err := OpenDB("fakedb")
	if err != nil {
		t.Fatalf("could not open refdata db: %+v", err)
	}
	defer db.Close()

	const ana = "STAR_2006_I709170"

	t.Run("edges", func(t *testing.T) {
		_ = fakedb.Run(context.Background(), fakedb.Rows{
			Names: []string{"xlow", "xhigh"},
			Values: [][]driver.Value{
				{0.4, 0.6},
				{0.6, 0.8},
				{0.8, 1.2},
			},
		}, func(ctx context.Context) error {
			edges, err := db.EdgesContext(ctx, ana, ID{12, 1, 1})
			if err != nil {
				t.Fatalf("could not retrieve edges: %+v", err)
			}
			if got, want := edges, []float64{0.4, 0.6, 0.8, 1.2}; !reflect.DeepEqual(got, want) {
				t.Fatalf("invalid edges: got=%v, want=%v", got, want)
			}

			q := fakedb.Last()
			if !strings.Contains(q.SQL, "FROM refbins") {
				t.Fatalf("invalid query: %q", q.SQL)
			}
			if got, want := q.Args, []driver.Value{ana, int64(12), int64(1), int64(1)}; !reflect.DeepEqual(got, want) {
				t.Fatalf("invalid query args: got=%#v, want=%#v", got, want)
			}
			return nil
		})
	})

	t.Run("not-found", func(t *testing.T) {
		_ = fakedb.Run(context.Background(), fakedb.Rows{
			Names: []string{"xlow", "xhigh"},
		}, func(ctx context.Context) error {
			_, err := db.Edges(ana, ID{99, 1, 1})
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrNotFound)
			}
			return nil
		})
	})

	t.Run("gap", func(t *testing.T) {
		_ = fakedb.Run(context.Background(), fakedb.Rows{
			Names: []string{"xlow", "xhigh"},
			Values: [][]driver.Value{
				{0.4, 0.6},
				{0.7, 0.8},
			},
		}, func(ctx context.Context) error {
			_, err := db.Edges(ana, ID{12, 1, 1})
			if err == nil {
				t.Fatalf("expected an error for non-contiguous bins")
			}
			return nil
		})
	})

	t.Run("multi", func(t *testing.T) {
		tbl := Table{}
		tbl.Add(ana, ID{2, 1, 1}, []float64{0.3, 0.4})
		_ = fakedb.Run(context.Background(), fakedb.Rows{
			Names:  []string{"xlow", "xhigh"},
			Values: [][]driver.Value{{1.0, 2.0}},
		}, func(ctx context.Context) error {
			m := Multi{tbl, db}
			edges, err := m.Edges(ana, ID{7, 1, 1})
			if err != nil {
				t.Fatalf("could not retrieve edges: %+v", err)
			}
			if got, want := edges, []float64{1, 2}; !reflect.DeepEqual(got, want) {
				t.Fatalf("invalid edges: got=%v, want=%v", got, want)
			}
			return nil
		})
	})
}
