package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dagdraft/internal/engine"
	"dagdraft/internal/generation"
	"dagdraft/internal/store"
	"dagdraft/internal/template"
)

// app bundles the wired subsystems for one command invocation.
type app struct {
	store    *store.LocalStore
	registry *template.Registry
	engine   *engine.Engine
}

// newApp wires the store, template registry, generation client, and engine
// from the loaded config.
func newApp(ctx context.Context) (*app, error) {
	st, err := store.NewLocalStore(cfg.Store.DatabasePath)
	if err != nil {
		return nil, err
	}

	reg, err := template.NewRegistry(cfg.Templates.Dir)
	if err != nil {
		st.Close()
		return nil, err
	}
	if cfg.Templates.Watch {
		if err := reg.StartWatching(ctx); err != nil {
			logger.Warn("template watcher unavailable", zap.Error(err))
		}
	}

	client, err := newClient(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}

	eng, err := engine.New(engine.Config{
		Store:    st,
		Registry: reg,
		Invoker:  generation.NewInvoker(client, cfg.Timeouts),
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	return &app{store: st, registry: reg, engine: eng}, nil
}

func (a *app) close() {
	a.registry.StopWatching()
	if err := a.store.Close(); err != nil {
		logger.Warn("store close failed", zap.Error(err))
	}
}

func newClient(ctx context.Context) (generation.Client, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return generation.NewGeminiClient(ctx, cfg.LLM, cfg.Timeouts.HTTPClientTimeout)
	case "openai":
		return generation.NewOpenAIClient(cfg.LLM, cfg.Timeouts.HTTPClientTimeout)
	case "mock":
		return generation.NewScriptedClient(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// parseFields turns repeated --field naam=waarde flags into a map.
func parseFields(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fields := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid field %q, expected naam=waarde", pair)
		}
		fields[strings.TrimSpace(key)] = value
	}
	return fields, nil
}
