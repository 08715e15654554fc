package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// DefaultPoolSize caps connections per environment unless configured.
	DefaultPoolSize = 5

	// connectRetries bounds transparent replacement of dead connections
	// before ConnectFailed surfaces.
	connectRetries = 2

	// idleRecycleAfter is how long a connection may sit idle before it is
	// closed and reopened instead of being handed out.
	idleRecycleAfter = 5 * time.Minute
)

type pooledConn struct {
	client   Client
	idleFrom time.Time
}

// Pool owns the live connections of exactly one environment. It never grows
// past its size: Acquire waits for a free slot and fails with PoolExhausted
// on timeout instead of opening extra connections.
type Pool struct {
	cfg  EnvironmentConfig
	dial Dialer

	// slots carries one token per connection the pool may hold; idle carries
	// connections that are currently checked in. Both are sized to cfg.PoolSize.
	slots chan struct{}
	idle  chan pooledConn

	mu     sync.Mutex
	closed bool
}

// NewPool creates an empty pool; connections are opened on demand.
func NewPool(cfg EnvironmentConfig, dial Dialer) *Pool {
	size := cfg.PoolSize
	if size <= 0 {
		size = DefaultPoolSize
	}
	p := &Pool{
		cfg:   cfg,
		dial:  dial,
		slots: make(chan struct{}, size),
		idle:  make(chan pooledConn, size),
	}
	for i := 0; i < size; i++ {
		p.slots <- struct{}{}
	}
	return p
}

// Acquire checks a connection out, waiting up to timeout for a free slot.
// Handed-out connections have passed a liveness probe; dead ones are
// replaced transparently within the bounded retry budget.
func (p *Pool) Acquire(ctx context.Context, timeout time.Duration) (Client, error) {
	if timeout <= 0 {
		timeout = p.cfg.Timeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-p.slots:
	case <-waitCtx.Done():
		return nil, NewError(KindPoolExhausted,
			"no free connection for environment %q within %s", p.cfg.Name, timeout)
	}

	if p.isClosed() {
		p.slots <- struct{}{}
		return nil, NewError(KindEnvironmentNotConfigured, "environment %q has been torn down", p.cfg.Name)
	}

	// Reuse an idle connection when it is fresh and alive; otherwise open a
	// replacement. The slot token is returned on every failure path.
	if conn, ok := p.takeIdle(); ok {
		if time.Since(conn.idleFrom) < idleRecycleAfter && conn.client.Ping(waitCtx) == nil {
			return conn.client, nil
		}
		slog.Debug("recycling stale pooled connection", "environment", p.cfg.Name)
		_ = conn.client.Close()
	}

	client, err := backoff.Retry(waitCtx, func() (Client, error) {
		return p.dial(p.cfg)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(connectRetries+1))
	if err != nil {
		p.slots <- struct{}{}
		return nil, NewError(KindConnectFailed,
			"failed to connect to environment %q: %v", p.cfg.Name, err)
	}
	return client, nil
}

// Release checks a connection back in. If the pool has been torn down in the
// meantime, the connection is closed instead.
func (p *Pool) Release(client Client) {
	if client == nil {
		return
	}
	// The closed-check and the checkin happen under the same lock Close uses
	// to flip the flag, so a connection is either checked in before Close
	// drains the idle set, or closed here. The channel sends cannot block:
	// both are sized to the slot count and this connection holds a slot.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = client.Close()
		return
	}
	p.idle <- pooledConn{client: client, idleFrom: time.Now()}
	p.slots <- struct{}{}
}

// Discard closes a connection without returning it to the idle set. Used for
// connections whose statement timed out: their state is indeterminate.
func (p *Pool) Discard(client Client) {
	if client == nil {
		return
	}
	_ = client.Close()
	if !p.isClosed() {
		p.slots <- struct{}{}
	}
}

// Close tears the pool down, closing every idle connection. Checked-out
// connections are closed as they come back through Release.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	var firstErr error
	for {
		conn, ok := p.takeIdle()
		if !ok {
			break
		}
		if err := conn.client.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing pooled connection: %w", err)
		}
	}
	return firstErr
}

// FreeSlots reports how many connections could currently be checked out.
// Exposed for the executor's leak invariant tests.
func (p *Pool) FreeSlots() int {
	return len(p.slots)
}

func (p *Pool) takeIdle() (pooledConn, bool) {
	select {
	case conn := <-p.idle:
		return conn, true
	default:
		return pooledConn{}, false
	}
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
