package pool

import (
	"context"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"qgo/errs"
	"qgo/session"
	"qgo/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startFakeServer accepts every connection on a loopback listener and
// performs just the handshake, matching what Pool.New's min-size
// pre-creation and Acquire's on-demand opens both need (no query
// traffic is exercised in these pool-sizing tests).
func startFakeServer(t *testing.T) transport.Options {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				buf := make([]byte, 4096)
				if _, err := c.Read(buf); err != nil {
					return
				}
				c.Write([]byte{0x06})
			}(conn)
		}
	}()

	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return transport.Options{Host: "127.0.0.1", Port: port, User: "u", Password: "p", Timeout: time.Second}
}

func TestPoolPreCreatesMinSize(t *testing.T) {
	opts := startFakeServer(t)
	p, err := New(Options{Session: session.Options{Transport: opts}, MinSize: 2, MaxSize: 4})
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 2, p.Size())
}

func TestPoolExhaustionThenRelease(t *testing.T) {
	opts := startFakeServer(t)
	p, err := New(Options{Session: session.Options{Transport: opts}, MinSize: 1, MaxSize: 2, Timeout: 100 * time.Millisecond})
	require.NoError(t, err)
	defer p.Close()

	s1, err := p.Acquire(context.Background())
	require.NoError(t, err)
	s2, err := p.Acquire(context.Background())
	require.NoError(t, err)

	start := time.Now()
	_, err = p.Acquire(context.Background())
	elapsed := time.Since(start)

	var poolErr *errs.PoolExhaustedError
	require.True(t, assert.ErrorAs(t, err, &poolErr))
	assert.InDelta(t, 100*time.Millisecond, elapsed, float64(100*time.Millisecond))

	var wg sync.WaitGroup
	wg.Add(1)
	var acquired *session.Session
	var acqErr error
	go func() {
		defer wg.Done()
		acquired, acqErr = p.Acquire(context.Background())
	}()

	time.Sleep(10 * time.Millisecond)
	p.Release(s1)
	wg.Wait()

	require.NoError(t, acqErr)
	assert.NotNil(t, acquired)
	p.Release(acquired)
	p.Release(s2)
}
