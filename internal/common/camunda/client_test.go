package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/errors"
)

func testClient() *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: 2,
			BaseDelay:  time.Millisecond,
			MaxDelay:   2 * time.Millisecond,
		},
	}}
}

func TestExecuteWithRetry_RecoversFromTransientErrors(t *testing.T) {
	c := testClient()
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return stderrors.New("rpc error: code = Unavailable")
		}
		return nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_GivesUp(t *testing.T) {
	c := testClient()
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return stderrors.New("connection refused")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBrokerUnavailable, stdErr.Code)
}

func TestExecuteWithRetry_PermanentErrorNotRetried(t *testing.T) {
	c := testClient()
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return stderrors.New("permission denied")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInternalError, stdErr.Code)
}

func TestExecuteWithRetry_Cancelled(t *testing.T) {
	c := testClient()
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	err := c.ExecuteWithRetry(ctx, func(context.Context) error {
		cancel()
		return stderrors.New("deadline exceeded")
	}, "topology")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", RequestTimeout: 5000})
	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.UsePlaintextConnection)

	assert.Equal(t, 30*time.Second, ConfigFrom(config.CamundaConfig{}).RequestTimeout)
}
