package transport

import (
	"context"

	"qgo/errs"
	"qgo/wire"
)

// AsyncConn is the cooperatively-scheduled variant of Conn; both speak
// the same frame and codec. Go has no native coroutine primitive, so
// "cooperative" is realized as: a single background goroutine owns the
// socket, and every Send/Receive hands its work to that goroutine over
// a channel and blocks only the calling goroutine, never holding the
// connection across unrelated work. Exactly one in-flight request per
// connection still holds — the worker goroutine processes jobs one at
// a time, in order.
type AsyncConn struct {
	conn *Conn
	jobs chan asyncJob
	done chan struct{}
}

type asyncJob struct {
	kind  wire.MessageKind
	send  wire.TV
	reply chan asyncReply
}

type asyncReply struct {
	tv  wire.TV
	err error
}

// ConnectAsync dials and handshakes exactly like Connect, then starts
// the worker goroutine that serializes all I/O for this connection.
func ConnectAsync(opts Options) (*AsyncConn, error) {
	c, err := Connect(opts)
	if err != nil {
		return nil, err
	}
	ac := &AsyncConn{
		conn: c,
		jobs: make(chan asyncJob),
		done: make(chan struct{}),
	}
	go ac.run()
	return ac, nil
}

func (ac *AsyncConn) run() {
	defer close(ac.done)
	for job := range ac.jobs {
		if err := ac.conn.Send(job.kind, job.send); err != nil {
			job.reply <- asyncReply{err: err}
			continue
		}
		tv, err := ac.conn.Receive()
		job.reply <- asyncReply{tv: tv, err: err}
	}
}

// Send submits a request and waits for its matching response, or for
// ctx to be canceled. The worker does not see ctx: once it has taken
// the job it still sends the request and reads the reply, which is
// dropped into the job's buffered reply channel. Callers that cancel a
// pending Send must Close the AsyncConn instead of reusing it, so a
// late response can never be misattributed to a later request.
func (ac *AsyncConn) Send(ctx context.Context, kind wire.MessageKind, tv wire.TV) (wire.TV, error) {
	reply := make(chan asyncReply, 1)
	select {
	case ac.jobs <- asyncJob{kind: kind, send: tv, reply: reply}:
	case <-ctx.Done():
		return nil, &errs.ConnectionError{Op: "async send", Err: ctx.Err()}
	case <-ac.done:
		return nil, &errs.ConnectionError{Op: "async send", Err: errConnClosed}
	}

	select {
	case r := <-reply:
		return r.tv, r.err
	case <-ctx.Done():
		return nil, &errs.ConnectionError{Op: "async receive", Err: ctx.Err()}
	}
}

// Ping sends a trivial expression and awaits a matching reply.
func (ac *AsyncConn) Ping(ctx context.Context) error {
	_, err := ac.Send(ctx, wire.MsgSyncRequest, stringTV(""))
	return err
}

// Close stops the worker goroutine and closes the underlying socket.
// It is safe to call once; a second call returns the same error the
// socket close produces.
func (ac *AsyncConn) Close() error {
	select {
	case <-ac.done:
		// already closed: the worker has exited
	default:
		close(ac.jobs)
		<-ac.done
	}
	return ac.conn.Close()
}

// State returns the underlying connection's lifecycle stage.
func (ac *AsyncConn) State() State { return ac.conn.State() }
