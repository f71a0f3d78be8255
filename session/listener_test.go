package session

import (
	"context"
	"net"
	"testing"
	"time"

	"qgo/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenerStripsFunctionSymbolAndDeliversInOrder(t *testing.T) {
	srv := startFakeServer(t)
	srv.serveOnce(t, func(conn net.Conn) {
		defer conn.Close()
		acceptHandshake(t, conn, 0x06)

		// subscribe ack
		replyOnce(t, conn, wire.Nullary{})

		push := func(table string, n int64) {
			upd := wire.Vector{K: wire.KMixed, Elems: []any{
				symbolValue("upd"),
				symbolValue(table),
				wire.Value{K: wire.KLong, Val: wire.Long(n)},
			}}
			require.NoError(t, wire.WriteFrame(conn, wire.MsgAsync, upd))
		}
		push("trade", 1)
		push("trade", 2)
	})

	l, err := Subscribe(srv.opts(), "trade", nil)
	require.NoError(t, err)
	defer l.Close()

	var got []Update
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- l.Run(ctx, func(u Update) { got = append(got, u) })
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-runErr

	require.Len(t, got, 2)
	assert.Equal(t, "trade", got[0].Table)
	assert.Equal(t, "trade", got[1].Table)
	assert.Equal(t, wire.Long(1), got[0].Data.(wire.Value).Val)
	assert.Equal(t, wire.Long(2), got[1].Data.(wire.Value).Val)
}
