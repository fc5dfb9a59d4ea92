package generator

import "context"

// MockGenerator is a stand-in for local runs and tests; it never calls the
// external service.
type MockGenerator struct {
	Reply string
	Err   error
}

func (m MockGenerator) Generate(_ context.Context, instruction string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return "[mock] " + instruction, nil
}
