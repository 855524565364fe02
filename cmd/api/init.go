package main

import (
	"context"

	"calcpad/internal/calcapi"
	"calcpad/internal/observability"
)

// initTelemetry starts OTLP export when enabled and creates the calculator
// instruments. With export disabled the instruments record into the global
// no-op providers.
func initTelemetry(ctx context.Context, enabled bool) (func(context.Context) error, error) {
	shutdown := func(context.Context) error { return nil }

	if enabled {
		var err error
		shutdown, err = observability.Setup(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := calcapi.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
