package waml

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/internal/logging"
)

// Encoder writes WAML values to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the WAML encoding of v to the stream, followed by a
// newline. Output is produced in chunks of the size set with ChunkSize.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	if err := encode(e.w, v, o, logging.New(o.logger, "encoder")); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

// encode pulls the writer for v through an output buffer of o.chunkSize
// bytes, copying each chunk to w.
func encode(w io.Writer, v any, o *options, log logging.Logger) error {
	var wr codec.Writer
	if v == nil {
		wr = grammar.Literal("null")
	} else {
		f, err := o.registry.Resolve(reflect.TypeOf(v))
		if err != nil {
			return err
		}
		wr = f.Writer(v, &o.writer, 0)
	}
	out := codec.NewOutputBuffer(o.chunkSize)
	for wr.IsCont() {
		wr = wr.Pull(out)
		p := out.Drain()
		if len(p) == 0 {
			if wr.IsCont() {
				return fmt.Errorf("waml: writer made no progress")
			}
			break
		}
		log.Log(slog.LevelDebug, "chunk written", slog.Int("bytes", len(p)))
		if _, err := w.Write(p); err != nil {
			return &codec.IOError{Err: err}
		}
	}
	if wr.IsError() {
		return wr.Err()
	}
	return nil
}
