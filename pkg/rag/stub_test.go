package rag

import (
	"context"
	"time"

	"agri-assist-be/pkg/llm"
)

// stubLLM routes every call through fn so each test scripts the model's replies.
type stubLLM struct {
	fn func(prompt string) (string, error)
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	last := ""
	if len(history) > 0 {
		last = history[len(history)-1].Content
	}
	return s.fn(last)
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.fn(prompt)
}

type stubSource struct {
	name  string
	docs  []Document
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Retrieve(ctx context.Context, query string) ([]Document, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.docs, s.err
}

func doc(content, source string) Document {
	return Document{Content: content, Source: source}
}
