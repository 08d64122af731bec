package weather

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"agri-assist-be/pkg/llm"
)

type stubLLM struct {
	response string
	err      error
	prompt   string
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestSimplify(t *testing.T) {
	model := &stubLLM{response: "Light rain expected, good day for transplanting."}
	s := NewSimplifier(model, log.Default())

	got := s.Simplify(context.Background(), "Pune", "raw forecast text")
	if got != "Light rain expected, good day for transplanting." {
		t.Errorf("Simplify() = %q", got)
	}
	if !strings.Contains(model.prompt, "raw forecast text") || !strings.Contains(model.prompt, "Pune") {
		t.Errorf("prompt missing forecast or city: %q", model.prompt)
	}
}

func TestSimplifyModelFailure(t *testing.T) {
	s := NewSimplifier(&stubLLM{err: errors.New("model down")}, log.Default())

	got := s.Simplify(context.Background(), "Pune", "raw forecast text")
	if got != SimplificationFailedAnswer {
		t.Errorf("Simplify() = %q, want %q", got, SimplificationFailedAnswer)
	}
}
