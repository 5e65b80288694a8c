package resolve

import "context"

// Recognizer classifies a canonical glyph image.
//
// Classify receives PNG bytes and returns the recognized text, or "" when
// nothing was recognized. An error and an empty result are both recorded as
// StatusUnresolved; neither aborts resolution.
type Recognizer interface {
	Classify(ctx context.Context, png []byte) (string, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, png []byte) (string, error)

// Classify implements Recognizer.
func (f RecognizerFunc) Classify(ctx context.Context, png []byte) (string, error) {
	return f(ctx, png)
}
