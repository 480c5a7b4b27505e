package main

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// openInput opens the named file, or stdin for "" and "-". Zstandard and
// gzip streams are decompressed on the fly.
func openInput(name string, stdin io.Reader) (io.ReadCloser, string, error) {
	var src io.Reader = stdin
	done := func() error { return nil }
	if name == "" || name == "-" {
		name = "<stdin>"
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, name, err
		}
		src, done = f, f.Close
	}

	br := bufio.NewReader(src)
	magic, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = done()
			return nil, name, err
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return done()
		}}, name, nil
	case bytes.HasPrefix(magic, gzipMagic):
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = done()
			return nil, name, err
		}
		return readCloser{Reader: gr, close: func() error {
			_ = gr.Close()
			return done()
		}}, name, nil
	}
	return readCloser{Reader: br, close: done}, name, nil
}
