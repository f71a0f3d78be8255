// Package pool implements a bounded connection pool: a set of Sessions
// sized between MinSize and MaxSize, acquired/released by callers,
// with an optional health check on acquire. The bounded-wait primitive
// is golang.org/x/sync/semaphore's Weighted — a counting semaphore
// over a mutex-protected idle set.
package pool

import (
	"context"
	"sync"
	"time"

	"qgo/errs"
	"qgo/session"

	"golang.org/x/sync/semaphore"
)

// Options configures a Pool.
type Options struct {
	Session        session.Options
	MinSize        int
	MaxSize        int
	Timeout        time.Duration // Acquire's wait deadline when at MaxSize
	CheckOnAcquire bool
}

// Pool is a bounded set of Sessions, safe for concurrent
// Acquire/Release calls from any number of goroutines.
type Pool struct {
	opts Options
	sem  *semaphore.Weighted

	mu   sync.Mutex
	idle []*session.Session
	size int // total sessions currently live (idle + acquired)
}

// New creates a Pool and eagerly opens MinSize connections. sem's
// permits represent
// checked-out slots, not live connections: an idle connection holds no
// permit, so reusing one from the idle set never touches the
// semaphore, and precreated connections start out idle and unheld.
func New(opts Options) (*Pool, error) {
	p := &Pool{
		opts: opts,
		sem:  semaphore.NewWeighted(int64(opts.MaxSize)),
	}
	for i := 0; i < opts.MinSize; i++ {
		s, err := session.Connect(opts.Session)
		if err != nil {
			p.closeAll()
			return nil, err
		}
		p.mu.Lock()
		p.idle = append(p.idle, s)
		p.size++
		p.mu.Unlock()
	}
	return p, nil
}

// Acquire returns an idle Session, opening a new one if the pool is
// below MaxSize, or waiting up to Timeout if at capacity.
// When CheckOnAcquire is set, the returned connection is
// pinged first; a failing connection is closed and replaced, and the
// check repeats until a healthy connection is handed back.
func (p *Pool) Acquire(ctx context.Context) (*session.Session, error) {
	for {
		s, err := p.acquireOne(ctx)
		if err != nil {
			return nil, err
		}
		if !p.opts.CheckOnAcquire {
			return s, nil
		}
		if pingErr := s.Ping(); pingErr == nil {
			return s, nil
		}
		s.Close()
		p.mu.Lock()
		p.size--
		p.mu.Unlock()
		p.sem.Release(1)
		// fall through and try again: acquireOne below reuses an idle
		// session if one exists, otherwise opens a fresh replacement
		// in the slot just released.
	}
}

func (p *Pool) acquireOne(ctx context.Context) (*session.Session, error) {
	waitCtx := ctx
	var cancel context.CancelFunc
	if p.opts.Timeout > 0 {
		waitCtx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	if err := p.sem.Acquire(waitCtx, 1); err != nil {
		return nil, &errs.PoolExhaustedError{Waited: time.Since(start).String()}
	}

	p.mu.Lock()
	if n := len(p.idle); n > 0 {
		s := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return s, nil
	}
	p.mu.Unlock()

	s, err := session.Connect(p.opts.Session)
	if err != nil {
		p.sem.Release(1)
		return nil, err
	}
	p.mu.Lock()
	p.size++
	p.mu.Unlock()
	return s, nil
}

// Release returns s to the idle set. A Session whose underlying
// connection is broken is closed instead of returned.
func (p *Pool) Release(s *session.Session) {
	if s.Broken() {
		s.Close()
		p.mu.Lock()
		p.size--
		p.mu.Unlock()
		p.sem.Release(1)
		return
	}
	p.mu.Lock()
	p.idle = append(p.idle, s)
	p.mu.Unlock()
	p.sem.Release(1)
}

// Size returns the pool's current total session count (idle + in use).
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Close closes every idle connection. Connections currently acquired
// by callers are unaffected; callers should Release (or Close
// directly) before discarding a Pool.
func (p *Pool) Close() error {
	p.closeAll()
	return nil
}

func (p *Pool) closeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.idle {
		s.Close()
	}
	p.idle = nil
	p.size = 0
}
