package discovery

import (
	"net"
	"strconv"
	"strings"
	"testing"

	"qgo/errs"
	"qgo/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenPort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
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
	return port, func() { ln.Close() }
}

func TestClientConnectFailsOverToSecondCandidate(t *testing.T) {
	goodPort, stop := listenPort(t)
	defer stop()

	csv := "dataset,cluster,dbtype,node,host,port,port_env,env\n" +
		"mkt,c1,rdb,n1,127.0.0.1,1,,prod\n" +
		"mkt,c1,rdb,n2,127.0.0.1," + strconv.Itoa(goodPort) + ",,prod\n"
	cat, err := registry.LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	client := NewCatalogClient(cat, registry.SchemeKDB, "u", "p")
	s, err := client.Connect("mkt", "prod")
	require.NoError(t, err)
	defer s.Close()
}

func TestClientConnectNoCandidates(t *testing.T) {
	cat, err := registry.LoadCSV(strings.NewReader("dataset,cluster,dbtype,node,host,port,port_env,env\n"))
	require.NoError(t, err)

	client := NewCatalogClient(cat, registry.SchemeKDB, "u", "p")
	_, err = client.Connect("mkt", "prod")
	var notFound *errs.ServiceNotFoundError
	require.True(t, assert.ErrorAs(t, err, &notFound))
}

func TestClientConnectAllCandidatesFail(t *testing.T) {
	csv := "dataset,cluster,dbtype,node,host,port,port_env,env\n" +
		"mkt,c1,rdb,n1,127.0.0.1,1,,prod\n"
	cat, err := registry.LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	client := NewCatalogClient(cat, registry.SchemeKDB, "u", "p")
	_, err = client.Connect("mkt", "prod")
	require.Error(t, err)
	var connErr *errs.ConnectionError
	assert.True(t, assert.ErrorAs(t, err, &connErr))
}
