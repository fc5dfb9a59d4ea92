package generator

import (
	"context"
	"errors"
)

// ErrGeneration is returned for every failure of the generation service.
// Callers never distinguish failure subtypes: transport, auth, rate-limit
// and malformed-response problems all surface the same user-facing message.
var ErrGeneration = errors.New("generation failed")

// Generator abstracts the text-generation service so handlers can be tested
// without network access.
type Generator interface {
	Generate(ctx context.Context, instruction string) (string, error)
}
