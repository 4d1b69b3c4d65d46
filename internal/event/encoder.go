package event

import (
	"encoding/json"
	"fmt"
	"io"
)

type flusher interface {
	Flush() error
}

// Encoder writes events as newline-delimited JSON. When the underlying
// writer can be flushed (bufio.Writer) every record is flushed on its own so
// the reader sees each event as soon as it is produced.
type Encoder struct {
	w   io.Writer
	enc *json.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Encoder{w: w, enc: enc}
}

// Encode writes one record followed by a newline
func (e *Encoder) Encode(ev Event) error {
	if err := e.enc.Encode(ev); err != nil {
		return fmt.Errorf("encode %s event: %w", ev.Type, err)
	}
	if f, ok := e.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush %s event: %w", ev.Type, err)
		}
	}
	return nil
}
