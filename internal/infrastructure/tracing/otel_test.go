package tracing

import (
	"context"
	"testing"

	"github.com/esgpulse/supplier-compliance-service/internal/config"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.Tracing{Enabled: false}, "test", logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
