package oracle

import (
	"context"
	"fmt"
)

// Stub is a canned Oracle for tests: fixed help output and one listing per
// match expression. It records every probe in order.
type Stub struct {
	Help     string
	Listings map[string]string

	// Probed collects the match expressions in probe order.
	Probed []string

	// HelpErr, ProbeErr and ListErr fail the corresponding call when set.
	HelpErr  error
	ProbeErr error
	ListErr  error

	last string
}

var _ Oracle = (*Stub)(nil)

func (s *Stub) HelpText(ctx context.Context) (string, error) {
	if s.HelpErr != nil {
		return "", s.HelpErr
	}
	return s.Help, nil
}

func (s *Stub) Probe(ctx context.Context, expr string) error {
	if s.ProbeErr != nil {
		return s.ProbeErr
	}
	s.Probed = append(s.Probed, expr)
	s.last = expr
	return nil
}

func (s *Stub) ListRules(ctx context.Context) (string, error) {
	if s.ListErr != nil {
		return "", s.ListErr
	}
	listing, ok := s.Listings[s.last]
	if !ok {
		return "", fmt.Errorf("stub: no listing for probe %q", s.last)
	}
	return listing, nil
}
