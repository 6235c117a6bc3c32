package natsclient

import (
	"context"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessageIDIsStable(t *testing.T) {
	a := MessageID("osplugin.instances", []byte(`{"event":"instance.failed"}`))
	assert.Equal(t, a, MessageID("osplugin.instances", []byte(`{"event":"instance.failed"}`)))
	assert.NotEqual(t, a, MessageID("osplugin.instances", []byte(`{"event":"instance.deleted"}`)))
	assert.NotEqual(t, a, MessageID("other", []byte(`{"event":"instance.failed"}`)))
}

func TestNewPublisherUnreachable(t *testing.T) {
	_, err := NewPublisher("nats://127.0.0.1:1", zap.NewNop())
	assert.Error(t, err)
}

func TestPublishWithoutConnection(t *testing.T) {
	p := &Publisher{log: zap.NewNop()}
	assert.ErrorIs(t, p.Publish(context.Background(), "s", nil), ErrClosed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "s", nil), context.Canceled)
	p.Close()
}

func TestPublishDeliversWithoutCallerDeadline(t *testing.T) {
	s := natsserver.RunRandClientPortServer()
	defer s.Shutdown()

	sub, err := nats.Connect(s.ClientURL())
	require.NoError(t, err)
	defer sub.Close()
	inbox, err := sub.SubscribeSync("osplugin.instances")
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	p, err := NewPublisher(s.ClientURL(), zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	// cancellable but unbounded, like the reconciler's root context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	payload := []byte(`{"event":"instance.instantiated","instanceId":"i1"}`)
	require.NoError(t, p.Publish(ctx, "osplugin.instances", payload))

	msg, err := inbox.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, payload, msg.Data)
	assert.Equal(t, MessageID("osplugin.instances", payload), msg.Header.Get(nats.MsgIdHdr))
}
