// Package ioutils opens inputs and outputs for the format packages, handling
// stdin/stdout ("-") and transparent gzip.
package ioutils

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
)

// IsStdio reports whether path addresses stdin or stdout.
func IsStdio(path string) bool { return path == "" || path == "-" }

// OpenMaybeCompressed opens a file path or stdin ("-") and returns a buffered
// reader. Gzip input is detected by the .gz extension or by its magic bytes.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	if IsStdio(path) {
		return maybeGunzip(bufio.NewReader(os.Stdin), func() error { return nil })
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".gz" {
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return readCloser{Reader: bufio.NewReader(zr), closeFn: func() error { _ = zr.Close(); return f.Close() }}, nil
	}
	rc, err := maybeGunzip(bufio.NewReader(f), f.Close)
	if err != nil {
		_ = f.Close()
	}
	return rc, err
}

func maybeGunzip(br *bufio.Reader, closeFn func() error) (io.ReadCloser, error) {
	if b, err := br.Peek(2); err == nil && b[0] == 0x1f && b[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: bufio.NewReader(zr), closeFn: func() error { _ = zr.Close(); return closeFn() }}, nil
	}
	return readCloser{Reader: br, closeFn: closeFn}, nil
}

// CreateMaybeCompressed creates a file (or stdout for "-") and returns a
// buffered writer. A .gz path is gzip compressed.
func CreateMaybeCompressed(path string) (io.WriteCloser, error) {
	if IsStdio(path) {
		return writeCloser{bw: bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".gz" {
		zw := gzip.NewWriter(f)
		return writeCloser{bw: bufio.NewWriter(zw), closeFn: func() error {
			if err := zw.Close(); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		}}, nil
	}
	return writeCloser{bw: bufio.NewWriter(f), closeFn: f.Close}, nil
}

type readCloser struct {
	io.Reader
	closeFn func() error
}

func (r readCloser) Close() error { return r.closeFn() }

type writeCloser struct {
	bw      *bufio.Writer
	closeFn func() error
}

func (w writeCloser) Write(p []byte) (int, error) { return w.bw.Write(p) }

// Close flushes buffered output before closing the underlying file.
func (w writeCloser) Close() error {
	err := w.bw.Flush()
	if w.closeFn != nil {
		if cerr := w.closeFn(); err == nil {
			err = cerr
		}
	}
	return err
}
