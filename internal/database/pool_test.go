package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClient struct {
	mu      sync.Mutex
	queries []string
	queryFn func(ctx context.Context, db, sql string) (*TabularResult, error)
	pingErr error
	closed  bool
}

func (c *fakeClient) Query(ctx context.Context, db, sql string) (*TabularResult, error) {
	c.mu.Lock()
	c.queries = append(c.queries, sql)
	c.mu.Unlock()
	if c.queryFn != nil {
		return c.queryFn(ctx, db, sql)
	}
	return &TabularResult{Status: "succ"}, nil
}

func (c *fakeClient) Ping(ctx context.Context) error { return c.pingErr }

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// countingDialer hands out fresh fakeClients and counts dials.
type countingDialer struct {
	mu      sync.Mutex
	dials   int
	clients []*fakeClient
	err     error
	queryFn func(ctx context.Context, db, sql string) (*TabularResult, error)
}

func (d *countingDialer) dial(cfg EnvironmentConfig) (Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	if d.err != nil {
		return nil, d.err
	}
	client := &fakeClient{queryFn: d.queryFn}
	d.clients = append(d.clients, client)
	return client, nil
}

func (d *countingDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func testEnvConfig(size int) EnvironmentConfig {
	return EnvironmentConfig{
		Name:     "production",
		Host:     "tdengine.example.com",
		Port:     6041,
		Database: "power",
		Timeout:  time.Second,
		PoolSize: size,
	}
}

func TestPoolReusesIdleConnection(t *testing.T) {
	dialer := &countingDialer{}
	pool := NewPool(testEnvConfig(2), dialer.dial)
	defer pool.Close()

	conn, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	pool.Release(conn)

	again, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	pool.Release(again)

	if got := dialer.dialCount(); got != 1 {
		t.Errorf("dial count = %d, want 1 (idle connection reused)", got)
	}
	if got := pool.FreeSlots(); got != 2 {
		t.Errorf("free slots = %d, want 2", got)
	}
}

func TestPoolNeverGrowsPastSize(t *testing.T) {
	dialer := &countingDialer{}
	pool := NewPool(testEnvConfig(1), dialer.dial)
	defer pool.Close()

	conn, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	_, err = pool.Acquire(context.Background(), 50*time.Millisecond)
	if err == nil {
		t.Fatal("second acquire succeeded, want PoolExhausted")
	}
	if kind := KindOf(err); kind != KindPoolExhausted {
		t.Errorf("kind = %s, want PoolExhausted", kind)
	}

	pool.Release(conn)
	released, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	pool.Release(released)
}

func TestPoolReplacesDeadIdleConnection(t *testing.T) {
	dialer := &countingDialer{}
	pool := NewPool(testEnvConfig(1), dialer.dial)
	defer pool.Close()

	conn, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	// Kill the connection while it sits idle.
	conn.(*fakeClient).pingErr = errors.New("connection reset")
	pool.Release(conn)

	replacement, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer pool.Release(replacement)

	if got := dialer.dialCount(); got != 2 {
		t.Errorf("dial count = %d, want 2 (dead connection replaced)", got)
	}
	if !conn.(*fakeClient).isClosed() {
		t.Error("dead connection was not closed")
	}
}

func TestPoolDiscardFreesSlot(t *testing.T) {
	dialer := &countingDialer{}
	pool := NewPool(testEnvConfig(1), dialer.dial)
	defer pool.Close()

	conn, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	pool.Discard(conn)

	if !conn.(*fakeClient).isClosed() {
		t.Error("discarded connection was not closed")
	}
	if got := pool.FreeSlots(); got != 1 {
		t.Errorf("free slots = %d, want 1 after discard", got)
	}

	// The discarded connection must never be handed out again.
	next, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("acquire after discard failed: %v", err)
	}
	if next == conn {
		t.Error("discarded connection was reissued")
	}
	pool.Release(next)
}

func TestPoolConnectFailure(t *testing.T) {
	dialer := &countingDialer{err: errors.New("connection refused")}
	pool := NewPool(testEnvConfig(1), dialer.dial)
	defer pool.Close()

	_, err := pool.Acquire(context.Background(), time.Second)
	if err == nil {
		t.Fatal("acquire succeeded against dead endpoint")
	}
	if kind := KindOf(err); kind != KindConnectFailed {
		t.Errorf("kind = %s, want ConnectFailed", kind)
	}
	// The failed attempt must not leak its slot.
	if got := pool.FreeSlots(); got != 1 {
		t.Errorf("free slots = %d, want 1 after failed connect", got)
	}
}

func TestPoolCloseShutsConnectionsDown(t *testing.T) {
	dialer := &countingDialer{}
	pool := NewPool(testEnvConfig(2), dialer.dial)

	idle, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	checkedOut, err := pool.Acquire(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	pool.Release(idle)

	if err := pool.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !idle.(*fakeClient).isClosed() {
		t.Error("idle connection survived Close")
	}

	// A connection released after teardown is closed, not pooled.
	pool.Release(checkedOut)
	if !checkedOut.(*fakeClient).isClosed() {
		t.Error("late-released connection survived Close")
	}

	if _, err := pool.Acquire(context.Background(), 50*time.Millisecond); err == nil {
		t.Error("acquire succeeded on closed pool")
	}
}

func TestPoolCloseRacingReleaseClosesConnection(t *testing.T) {
	// Close and Release race over the idle set: the connection must end up
	// closed whether it was checked in before the drain or released after the
	// pool shut down. Run the race repeatedly so either interleaving shows up.
	for i := 0; i < 100; i++ {
		dialer := &countingDialer{}
		pool := NewPool(testEnvConfig(1), dialer.dial)

		conn, err := pool.Acquire(context.Background(), time.Second)
		if err != nil {
			t.Fatalf("acquire failed: %v", err)
		}

		released := make(chan struct{})
		go func() {
			pool.Release(conn)
			close(released)
		}()
		if err := pool.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
		<-released

		if !conn.(*fakeClient).isClosed() {
			t.Fatal("connection released during Close was never closed")
		}
	}
}
