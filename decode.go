package waml

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/internal/logging"
)

// Decoder reads and decodes a WAML document from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
	done bool
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder reads r in chunks of the size set with ChunkSize and feeds
// each chunk to a parser that suspends whenever it runs out of input, so
// the document is never buffered whole.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the document from its input and stores it in the value
// pointed to by v. A stream holds one document: once it has been decoded
// Decode returns io.EOF.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("waml: Decode(nil reader)")
	}
	if d.done {
		return io.EOF
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return err
	}
	rv, form, err := target(v, o)
	if err != nil {
		return err
	}
	d.done = true
	result, err := d.feed(grammar.ParseDocument(form, &o.parser), o)
	if err != nil {
		return err
	}
	return store(rv, result)
}

func (d *Decoder) feed(p grammar.Parser, o *options) (any, error) {
	log := logging.New(o.logger, "decoder")
	in := codec.NewBuffer()
	chunk := make([]byte, o.chunkSize)
	total := 0
	for p = p.Feed(in); p.IsCont(); p = p.Feed(in) {
		n, err := d.r.Read(chunk)
		if n > 0 {
			_, _ = in.Write(chunk[:n])
			total += n
			log.Log(slog.LevelDebug, "chunk read", slog.Int("bytes", n), slog.Int("total", total))
		}
		switch {
		case errors.Is(err, io.EOF):
			in.Close()
		case err != nil:
			in.Fail(err)
		}
	}
	if p.IsError() {
		log.Log(slog.LevelDebug, "decode failed", slog.Any("error", p.Err()))
		return nil, p.Err()
	}
	return p.Get(), nil
}
