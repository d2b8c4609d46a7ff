package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNew_Disabled(t *testing.T) {
	tracer, err := New(false)
	require.NoError(t, err)

	ctx, span := tracer.Start(context.Background(), "report.build", attribute.String("user_id", "u1"))
	span.End()

	assert.Empty(t, Fields(ctx))
	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNew_Enabled(t *testing.T) {
	tracer, err := New(true)
	require.NoError(t, err)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	ctx, span := tracer.Start(context.Background(), "score.asset")
	defer span.End()

	fields := Fields(ctx)
	require.Len(t, fields, 2)
	assert.Equal(t, "trace_id", fields[0].Key)
}
