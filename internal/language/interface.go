package language

import "context"

// Detector returns the ISO 639-1 code of the language a text is written in
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}
