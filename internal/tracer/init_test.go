package tracer

import (
	"context"
	"testing"

	"agri-assist-be/internal/config"
)

func TestInitTracerDisabledByConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.OtelEnabled = false

	shutdown := InitTracer(cfg)
	if shutdown == nil {
		t.Fatal("InitTracer() returned nil shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown error = %v", err)
	}
}
