package session

import (
	"context"

	"qgo/transport"
	"qgo/wire"

	"golang.org/x/sync/errgroup"
)

// Listener owns a dedicated connection subscribed to server-pushed
// table updates: `.u.sub[tableSymbol;symbolVectorOrEmpty]` is invoked
// server-side, and the listener then receives async frames of shape
// (functionSym; tableName; data). Run strips the leading function
// symbol and delivers (tableName, data) to the caller's callback in
// arrival order, on the listener's own goroutine.
type Listener struct {
	conn *transport.Conn
}

// Update is one decoded, function-symbol-stripped subscription push.
type Update struct {
	Table string
	Data  wire.TV
}

// Subscribe opens a dedicated connection and issues the subscribe
// call for table. An empty symbols slice subscribes to every symbol
// on the table.
func Subscribe(opts transport.Options, table string, symbols []string) (*Listener, error) {
	conn, err := transport.Connect(opts)
	if err != nil {
		return nil, err
	}
	elems := []any{symbolValue(".u.sub"), symbolValue(table), symbolVectorTV(symbols)}
	if err := conn.Send(wire.MsgSyncRequest, wire.Vector{K: wire.KMixed, Elems: elems}); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Receive(); err != nil {
		conn.Close()
		return nil, err
	}
	return &Listener{conn: conn}, nil
}

// symbolVectorTV renders names as a symbol-vector TV, used for the
// subscribe call's symbol-filter argument.
func symbolVectorTV(names []string) wire.TV {
	elems := make([]any, len(names))
	for i, n := range names {
		elems[i] = wire.Symbol(n)
	}
	return wire.Vector{K: wire.KSymbol, Elems: elems}
}

// Run reads subscription pushes until ctx is canceled or the
// connection fails, delivering each to onUpdate. Canceling ctx closes
// the connection and returns ctx.Err(); a connection failure returns
// that error instead. onUpdate runs on the listener's goroutine and
// must not block it — Run does not enforce this, it is a caller
// contract.
func (l *Listener) Run(ctx context.Context, onUpdate func(Update)) error {
	g, _ := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		for {
			tv, err := l.conn.Receive()
			if err != nil {
				return err
			}
			if upd, ok := stripFunctionSymbol(tv); ok {
				onUpdate(upd)
			}
		}
	})

	select {
	case <-ctx.Done():
		l.conn.Close()
		<-done
		return ctx.Err()
	case <-done:
		return g.Wait()
	}
}

// Close closes the listener's dedicated connection.
func (l *Listener) Close() error {
	return l.conn.Close()
}

// stripFunctionSymbol unwraps a pushed (functionSym; tableName; data)
// mixed-list into an Update, discarding the leading function symbol.
func stripFunctionSymbol(tv wire.TV) (Update, bool) {
	v, ok := tv.(wire.Vector)
	if !ok || v.K != wire.KMixed || len(v.Elems) < 3 {
		return Update{}, false
	}
	nameVal, ok := v.Elems[1].(wire.TV)
	if !ok {
		return Update{}, false
	}
	nameScalar, ok := nameVal.(wire.Value)
	if !ok {
		return Update{}, false
	}
	sym, ok := nameScalar.Val.(wire.Symbol)
	if !ok {
		return Update{}, false
	}
	data, ok := v.Elems[2].(wire.TV)
	if !ok {
		return Update{}, false
	}
	return Update{Table: string(sym), Data: data}, true
}
