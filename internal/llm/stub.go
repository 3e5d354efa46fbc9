package llm

import "context"

// DefaultSummaryText es el texto enlatado que se devuelve sin proveedor real.
const DefaultSummaryText = "You both value tidy spaces and clear routines. Social energy looks balanced. Communication styles are compatible — likely smooth co-living with minor adjustments."

// StubClient devuelve siempre el mismo texto. Se usa cuando no hay API key
// configurada y en tests.
type StubClient struct {
	Response string
	Err      error
}

// NewStubClient crea el stub con el texto enlatado por defecto.
func NewStubClient() *StubClient {
	return &StubClient{Response: DefaultSummaryText}
}

func (s *StubClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.Response, s.Err
}
