package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to all of its writers, e.g. stdout and the rotated log file.
// A failing writer does not stop the others.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer{}, writers...),
	}
}

// Write reports the bytes written by the first healthy writer, so the
// caller sees a regular io.Writer contract.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var errs error
	written := -1
	for _, w := range cw.Writers {
		n, err := w.Write(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if written < 0 {
			written = n
		}
	}
	if written < 0 {
		return 0, errs
	}
	return written, errs
}
