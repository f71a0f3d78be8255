package session

import (
	"qgo/errs"
	"qgo/model"
	"qgo/query"
	"qgo/transport"
	"qgo/wire"
)

// Session owns one transport connection and coordinates request/
// response exchange, reconnecting under the configured RetryPolicy.
// A Session is not safe for concurrent use from multiple goroutines —
// connections are single-owner, and pool.Pool is what multiplexes
// many Sessions across callers.
type Session struct {
	conn *transport.Conn
	opts Options
}

// Connect dials and handshakes a new Session.
func Connect(opts Options) (*Session, error) {
	conn, err := transport.Connect(opts.Transport)
	if err != nil {
		return nil, err
	}
	return &Session{conn: conn, opts: opts}, nil
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

// reconnect discards the current (presumed broken) connection and
// opens a fresh one in its place.
func (s *Session) reconnect() error {
	s.conn.Close()
	conn, err := transport.Connect(s.opts.Transport)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

// sendReceive sends one sync-request frame and returns its decoded
// reply, wrapped in the RetryPolicy's reconnect-and-retry loop.
func (s *Session) sendReceive(tv wire.TV) (wire.TV, error) {
	var result wire.TV
	err := s.withRetry(func() error {
		if sendErr := s.conn.Send(wire.MsgSyncRequest, tv); sendErr != nil {
			return sendErr
		}
		reply, recvErr := s.conn.Receive()
		if recvErr != nil {
			return recvErr
		}
		result = reply
		return nil
	})
	return result, err
}

// Raw sends a bare server expression, optionally as a call form with
// args, and returns the decoded reply unwrapped. With no args it sends
// expr as a plain char-vector; with args it sends the call form
// `(expr;arg1;arg2;...)`.
func (s *Session) Raw(expr string, args ...wire.TV) (wire.TV, error) {
	return s.sendReceive(callForm(expr, args...))
}

// Call invokes a named server function with positional arguments,
// sending the call form `(` + fn + `;arg1;arg2;...)`.
func (s *Session) Call(fn string, args ...wire.TV) (wire.TV, error) {
	if len(args) == 0 {
		return s.sendReceive(symbolValue(fn))
	}
	elems := make([]any, 0, len(args)+1)
	elems = append(elems, symbolValue(fn))
	elems = append(elems, toAnySlice(args)...)
	return s.sendReceive(wire.Vector{K: wire.KMixed, Elems: elems})
}

// Exec compiles q and sends it, wrapping a table reply in a ResultSet
// bound to q's model, and returning any other reply TV unwrapped
// (the exec form may return a bare vector or a dict).
func (s *Session) Exec(q *query.Query) (any, error) {
	reply, err := s.Raw(q.Compile())
	if err != nil {
		return nil, err
	}
	if t, ok := reply.(wire.Table); ok {
		schema, _ := q.Model().(*model.SchemaDescriptor)
		return model.NewResultSet(t, schema)
	}
	return reply, nil
}

// CreateTable sends m's generated DDL string to the server.
func (s *Session) CreateTable(m *model.SchemaDescriptor) error {
	_, err := s.Raw(model.GenerateCreateTable(m))
	return err
}

// DropTable removes the named table's global variable on the server.
func (s *Session) DropTable(m *model.SchemaDescriptor) error {
	_, err := s.Raw("delete " + m.Name + " from `.")
	return err
}

// TableExists reports whether m's table name resolves on the server,
// via the `tables[]` introspection function.
func (s *Session) TableExists(m *model.SchemaDescriptor) (bool, error) {
	names, err := s.Tables()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == m.Name {
			return true, nil
		}
	}
	return false, nil
}

// Tables lists every table name the server currently exposes.
func (s *Session) Tables() ([]string, error) {
	reply, err := s.Raw("tables[]")
	if err != nil {
		return nil, err
	}
	return symbolsOf(reply)
}

// Namespaces lists every namespace the server exposes.
func (s *Session) Namespaces() ([]string, error) {
	reply, err := s.Raw("key `.")
	if err != nil {
		return nil, err
	}
	return symbolsOf(reply)
}

// Functions lists the defined function names, optionally scoped to
// namespace (an empty string means the default namespace).
func (s *Session) Functions(namespace string) ([]string, error) {
	expr := "functions[]"
	if namespace != "" {
		expr = "functions[`" + namespace + "]"
	}
	reply, err := s.Raw(expr)
	if err != nil {
		return nil, err
	}
	return symbolsOf(reply)
}

// Reflect builds and registers a SchemaDescriptor for tableName by
// issuing `meta`/`keys` against the server.
func (s *Session) Reflect(tableName string) (*model.SchemaDescriptor, error) {
	metaReply, err := s.Raw("meta " + tableName)
	if err != nil {
		return nil, &errs.ReflectionError{Table: tableName, Err: err}
	}
	metaTable, ok := metaReply.(wire.Table)
	if !ok {
		return nil, &errs.ReflectionError{Table: tableName, Err: errNotATable("meta")}
	}

	keysReply, err := s.Raw("keys " + tableName)
	if err != nil {
		return nil, &errs.ReflectionError{Table: tableName, Err: err}
	}
	keyCols, err := symbolsOf(keysReply)
	if err != nil {
		return nil, &errs.ReflectionError{Table: tableName, Err: err}
	}

	schema, err := model.ReflectFromMeta(tableName, metaTable, keyCols)
	if err != nil {
		return nil, err
	}
	model.Register(schema)
	return schema, nil
}

// ReflectAll reflects every table the server currently exposes.
func (s *Session) ReflectAll() ([]*model.SchemaDescriptor, error) {
	names, err := s.Tables()
	if err != nil {
		return nil, err
	}
	out := make([]*model.SchemaDescriptor, 0, len(names))
	for _, n := range names {
		schema, err := s.Reflect(n)
		if err != nil {
			return nil, err
		}
		out = append(out, schema)
	}
	return out, nil
}

// Ping round-trips a trivial expression, surfacing a broken connection
// as a ConnectionError without invoking the retry loop. Used by
// pool.Pool's check-on-acquire.
func (s *Session) Ping() error {
	return s.conn.Ping()
}

// Broken reports whether the session's underlying connection has
// transitioned to transport.StateBroken, meaning it must not be
// reused. Consulted by pool.Pool.Release.
func (s *Session) Broken() bool {
	return s.conn.State() == transport.StateBroken
}
