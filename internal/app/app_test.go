package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/genricoloni/spotbar/internal/domain"
	"go.uber.org/zap"
)

type stubQuerier struct {
	meta *domain.TrackMetadata
	err  error
}

func (s *stubQuerier) NowPlaying(context.Context) (*domain.TrackMetadata, error) {
	return s.meta, s.err
}

type stubFormatter struct{}

func (stubFormatter) Format(meta *domain.TrackMetadata) (string, bool) {
	if meta == nil {
		return "", false
	}
	return "[" + meta.Title + "]", true
}

// TestRun_PrintsOneLine verifies the happy path: one query, one
// newline-terminated line on the sink.
func TestRun_PrintsOneLine(t *testing.T) {
	var out bytes.Buffer
	a := NewApp(zap.NewNop(),
		&stubQuerier{meta: &domain.TrackMetadata{Title: "Song"}},
		stubFormatter{}, &out)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "[Song]\n" {
		t.Errorf("expected %q, got %q", "[Song]\n", out.String())
	}
}

// TestRun_SilentOutcomes consolidates the cases that must print
// nothing and still succeed: no player, and a failed query.
func TestRun_SilentOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		querier domain.Querier
	}{
		{name: "Nothing Playing", querier: &stubQuerier{}},
		{name: "Query Failed", querier: &stubQuerier{err: errors.New("bus unreachable")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			a := NewApp(zap.NewNop(), tt.querier, stubFormatter{}, &out)

			if err := a.Run(context.Background()); err != nil {
				t.Fatalf("expected graceful degradation, got error: %v", err)
			}
			if out.Len() != 0 {
				t.Errorf("expected empty output, got %q", out.String())
			}
		})
	}
}
