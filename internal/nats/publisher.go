package natsclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ErrClosed is returned when publishing on a closed connection.
var ErrClosed = errors.New("nats connection closed")

// flushTimeout bounds the server acknowledgement when ctx has no deadline.
const flushTimeout = 5 * time.Second

// msgNamespace seeds the deterministic message ids.
var msgNamespace = uuid.MustParse("6f1c1f0e-3b8e-4f7a-9a55-0b8c4c2a7d11")

// Publisher sends instance lifecycle events to NATS. Every message carries a
// Nats-Msg-Id derived from subject and payload, so a redelivered event is
// deduplicated by JetStream streams bound to the subject.
type Publisher struct {
	nc  *nats.Conn
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	log = log.Named("nats")
	opts := []nats.Option{
		nats.Name("osplugin"),
		nats.Timeout(5 * time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Warn("nats async error", zap.Error(err))
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	log.Info("nats connected", zap.String("url", nc.ConnectedUrl()))
	return &Publisher{nc: nc, log: log}, nil
}

// Publish sends payload on subject and waits until the server has received
// it or ctx ends. Without a deadline on ctx the wait is capped at five seconds.
func (p *Publisher) Publish(ctx context.Context, subject string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.nc == nil || p.nc.IsClosed() {
		return ErrClosed
	}
	msg := nats.NewMsg(subject)
	msg.Data = payload
	msg.Header.Set(nats.MsgIdHdr, MessageID(subject, payload))
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", subject, err)
	}
	return nil
}

// MessageID is the deduplication id of a message.
func MessageID(subject string, payload []byte) string {
	return uuid.NewSHA1(msgNamespace, append([]byte(subject+"\x00"), payload...)).String()
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.log.Warn("nats drain", zap.Error(err))
	}
	p.nc.Close()
}
