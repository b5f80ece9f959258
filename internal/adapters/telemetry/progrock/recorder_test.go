package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessc/internal/adapters/telemetry/progrock"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "{}/app.less")
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("compiling\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelInfo, "cache miss")
	vertex.Log(domain.LogLevelError, "broken")
	vertex.Complete(errors.New("broken"))

	_, cached := recorder.Record(context.Background(), "{}/other.less")
	cached.Cached()
	cached.Complete(nil)

	assert.NoError(t, recorder.Close())
}
