package server

import (
	"context"
	"path"
	"time"

	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/devghori1264/aerophoenix/osplugin/internal/metrics"
)

// Limiter bounds the number of RPCs handled at once.
type Limiter struct {
	sem *semaphore.Weighted
}

// NewLimiter returns a limiter admitting n concurrent calls; n <= 0 means 1.
func NewLimiter(n int64) *Limiter {
	if n <= 0 {
		n = 1
	}
	return &Limiter{sem: semaphore.NewWeighted(n)}
}

func (l *Limiter) Unary(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	defer l.sem.Release(1)
	return handler(ctx, req)
}

func (l *Limiter) Stream(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if err := l.sem.Acquire(ss.Context(), 1); err != nil {
		return status.FromContextError(err).Err()
	}
	defer l.sem.Release(1)
	return handler(srv, ss)
}

type statusReply interface {
	GetStatus() string
}

func outcome(resp any, err error) string {
	if err != nil {
		return status.Code(err).String()
	}
	if r, ok := resp.(statusReply); ok {
		return r.GetStatus()
	}
	return "OK"
}

// MetricsUnary records every unary call in the RPC metrics.
func MetricsUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	metrics.RecordRPC(path.Base(info.FullMethod), outcome(resp, err), time.Since(start))
	return resp, err
}

// MetricsStream records every streaming call in the RPC metrics.
func MetricsStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	metrics.RecordRPC(path.Base(info.FullMethod), outcome(nil, err), time.Since(start))
	return err
}

// NewGRPCServer builds a gRPC server with the limiter and metrics interceptors installed.
func NewGRPCServer(maxConcurrent int64, maxMsgBytes int, extra ...grpc.ServerOption) *grpc.Server {
	l := NewLimiter(maxConcurrent)
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(MetricsUnary, l.Unary),
		grpc.ChainStreamInterceptor(MetricsStream, l.Stream),
	}
	if maxMsgBytes > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(maxMsgBytes), grpc.MaxSendMsgSize(maxMsgBytes))
	}
	return grpc.NewServer(append(opts, extra...)...)
}
