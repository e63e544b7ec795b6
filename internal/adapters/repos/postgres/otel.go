package postgres

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("redacok/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("redacok/internal/adapters/repos/postgres")
)
