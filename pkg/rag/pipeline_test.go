package rag

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func newTestPipeline(model *stubLLM, sources ...Source) *Pipeline {
	l := log.Default()
	return NewPipeline(
		model,
		NewAggregator(l, sources...),
		NewCompressor(model, l),
		NewGenerator(model, "advisor", l),
		l,
	)
}

func TestPipelineRewriteFailureIsFatal(t *testing.T) {
	model := &stubLLM{fn: func(prompt string) (string, error) {
		return "", errors.New("model down")
	}}

	p := newTestPipeline(model, &stubSource{name: "s", docs: []Document{doc("a", "s")}})

	_, err := p.Run(context.Background(), "question")
	if err == nil {
		t.Fatal("expected error from rewrite failure, got nil")
	}
}

func TestPipelineEmptyPoolShortCircuits(t *testing.T) {
	calls := 0
	model := &stubLLM{fn: func(prompt string) (string, error) {
		calls++
		return "rewritten query", nil
	}}

	p := newTestPipeline(model, &stubSource{name: "s", err: errors.New("down")})

	got, err := p.Run(context.Background(), "question")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != NoInformationAnswer {
		t.Errorf("Run() = %q, want %q", got, NoInformationAnswer)
	}
	// Only the rewrite call should have reached the model.
	if calls != 1 {
		t.Errorf("model calls = %d, want 1", calls)
	}
}

func TestPipelineRetrievesWithRewrittenGeneratesWithOriginal(t *testing.T) {
	src := &queryRecordingSource{docs: []Document{doc("raw doc", "s")}}

	model := &stubLLM{fn: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Rewritten Query:"):
			return "rewritten query", nil
		case strings.Contains(prompt, "Compressed Content:"):
			return "compressed doc", nil
		default:
			// final generation prompt
			if !strings.Contains(prompt, "original question") {
				t.Errorf("generation prompt should contain the original question, got: %s", prompt)
			}
			if !strings.Contains(prompt, "compressed doc") {
				t.Errorf("generation prompt should contain compressed content, got: %s", prompt)
			}
			return "final answer", nil
		}
	}}

	p := newTestPipeline(model, src)

	got, err := p.Run(context.Background(), "original question")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "final answer" {
		t.Errorf("Run() = %q, want %q", got, "final answer")
	}
	if src.lastQuery != "rewritten query" {
		t.Errorf("source queried with %q, want the rewritten query", src.lastQuery)
	}
}

func TestPipelineEmptyRewriteFallsBackToOriginal(t *testing.T) {
	src := &queryRecordingSource{docs: []Document{doc("raw doc", "s")}}

	model := &stubLLM{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Rewritten Query:") {
			return "   ", nil
		}
		return "ok", nil
	}}

	p := newTestPipeline(model, src)

	if _, err := p.Run(context.Background(), "original question"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if src.lastQuery != "original question" {
		t.Errorf("source queried with %q, want the original question", src.lastQuery)
	}
}

type queryRecordingSource struct {
	docs      []Document
	lastQuery string
}

func (s *queryRecordingSource) Name() string { return "recording" }

func (s *queryRecordingSource) Retrieve(ctx context.Context, query string) ([]Document, error) {
	s.lastQuery = query
	return s.docs, nil
}
