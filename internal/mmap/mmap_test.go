// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmap // import "github.com/go-lpc/star/internal/mmap"

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestHandle(t *testing.T) {
	t.Run("nil-handle", func(t *testing.T) {
		var h *Handle

		_, err := h.ReadAt(nil, 0)
		if !errors.Is(err, os.ErrInvalid) {
			t.Fatalf("invalid read-at error: %+v", err)
		}

		err = h.Close()
		if !errors.Is(err, os.ErrInvalid) {
			t.Fatalf("invalid close error: %+v", err)
		}
	})
	t.Run("nil-data", func(t *testing.T) {
		var h Handle

		_, err := h.ReadAt(nil, 0)
		if !errors.Is(err, errClosed) {
			t.Fatalf("invalid read-at error: %+v", err)
		}

		err = h.Close()
		if err != nil {
			t.Fatalf("error closing nil-data handle: %+v", err)
		}
	})
}

func TestHandleFrom(t *testing.T) {
	h := HandleFrom([]byte{0, 1, 2, 3})

	if got, want := h.Len(), 4; got != want {
		t.Fatalf("invalid len: got=%d, want=%d", got, want)
	}

	if got, want := h.At(1), byte(1); got != want {
		t.Fatalf("invalid value: got=%d, want=%d", got, want)
	}

	_, err := h.ReadAt(nil, -1)
	if got, want := err.Error(), "mmap: invalid ReadAt offset -1"; got != want {
		t.Fatalf("invalid error: %+v", err)
	}

	buf := make([]byte, 3)
	n, err := h.ReadAt(buf, 2)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("invalid short-read error: %+v", err)
	}
	if n != 2 || buf[0] != 2 || buf[1] != 3 {
		t.Fatalf("invalid short read: n=%d, buf=%v", n, buf)
	}

	err = h.Close()
	if err != nil {
		t.Fatalf("could not close handle: %+v", err)
	}
}

func TestOpen(t *testing.T) {
	tmp, err := os.MkdirTemp("", "star-mmap-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	t.Run("file", func(t *testing.T) {
		fname := filepath.Join(tmp, "data.txt")
		err := os.WriteFile(fname, []byte("hello mmap"), 0644)
		if err != nil {
			t.Fatalf("could not create file: %+v", err)
		}

		h, err := Open(fname)
		if err != nil {
			t.Fatalf("could not mmap file: %+v", err)
		}
		defer h.Close()

		raw, err := io.ReadAll(h.Reader())
		if err != nil {
			t.Fatalf("could not read mmap file: %+v", err)
		}
		if got, want := string(raw), "hello mmap"; got != want {
			t.Fatalf("invalid content: got=%q, want=%q", got, want)
		}

		err = h.Close()
		if err != nil {
			t.Fatalf("could not close mmap file: %+v", err)
		}

		_, err = h.ReadAt(make([]byte, 1), 0)
		if !errors.Is(err, errClosed) {
			t.Fatalf("invalid read-after-close error: %+v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		fname := filepath.Join(tmp, "empty.txt")
		err := os.WriteFile(fname, nil, 0644)
		if err != nil {
			t.Fatalf("could not create file: %+v", err)
		}

		h, err := Open(fname)
		if err != nil {
			t.Fatalf("could not mmap empty file: %+v", err)
		}
		defer h.Close()

		if got, want := h.Len(), 0; got != want {
			t.Fatalf("invalid len: got=%d, want=%d", got, want)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Open(filepath.Join(tmp, "not-there.txt"))
		if err == nil {
			t.Fatalf("expected an error")
		}
	})
}
