package codec

import "errors"

// Writer is a resumable serialization.
type Writer interface {
	// Pull writes into out and returns the writer that continues the work.
	Pull(out Output) Writer
	IsCont() bool
	IsDone() bool
	IsError() bool
	// Err returns the failure of a failed writer.
	Err() error
}

// WriterContinuation is embedded by suspended writers to report the Cont
// standing.
type WriterContinuation struct{}

func (WriterContinuation) IsCont() bool  { return true }
func (WriterContinuation) IsDone() bool  { return false }
func (WriterContinuation) IsError() bool { return false }
func (WriterContinuation) Err() error    { return nil }

type doneWriter struct{}

// Written returns a done writer.
func Written() Writer { return doneWriter{} }

func (w doneWriter) Pull(Output) Writer { return w }
func (doneWriter) IsCont() bool        { return false }
func (doneWriter) IsDone() bool        { return true }
func (doneWriter) IsError() bool       { return false }
func (doneWriter) Err() error          { return nil }

type failedWriter struct {
	err error
}

// WriteFail returns a failed writer carrying err.
func WriteFail(err error) Writer { return failedWriter{err: err} }

func (w failedWriter) Pull(Output) Writer { return w }
func (failedWriter) IsCont() bool        { return false }
func (failedWriter) IsDone() bool        { return false }
func (failedWriter) IsError() bool       { return true }
func (w failedWriter) Err() error        { return w.err }

var errStalled = errors.New("waml: writer made no progress")

// WriteAll pulls w to completion into an unbounded buffer.
func WriteAll(w Writer) ([]byte, error) {
	out := NewOutputBuffer(0)
	for w.IsCont() {
		before := len(out.Bytes())
		w = w.Pull(out)
		if w.IsCont() && len(out.Bytes()) == before {
			return nil, errStalled
		}
	}
	if w.IsError() {
		return nil, w.Err()
	}
	return out.Bytes(), nil
}
