package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"qgo/errs"
)

// csvColumns is the required header row, in order.
var csvColumns = []string{"dataset", "cluster", "dbtype", "node", "host", "port", "port_env", "env"}

// Entry is one registry row: an engine endpoint keyed by its FQN
// (dataset.cluster.dbtype.node) plus the environment it belongs to.
type Entry struct {
	Dataset string
	Cluster string
	DBType  string
	Node    string
	Host    string
	Port    int
	PortEnv string
	Env     string
}

// FQN returns the glossary's `dataset.cluster.dbtype.node` form.
func (e Entry) FQN() string {
	return strings.Join([]string{e.Dataset, e.Cluster, e.DBType, e.Node}, ".")
}

// resolvedPort returns e.Port, or the value of the PortEnv environment
// variable when set (PortEnv lets a deployment override the CSV's
// literal port without editing the file).
func (e Entry) resolvedPort() (int, error) {
	if e.PortEnv == "" {
		return e.Port, nil
	}
	if v, ok := os.LookupEnv(e.PortEnv); ok {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("env %s: invalid port %q: %w", e.PortEnv, v, err)
		}
		return p, nil
	}
	return e.Port, nil
}

// Catalog is an in-memory engine catalog loaded from a registry CSV,
// keyed by FQN with a secondary index by (market, env) — "market" here
// is the entry's Dataset.
type Catalog struct {
	byFQN    map[string]Entry
	byMarket map[string][]Entry // key: dataset + "\x00" + env
}

// LoadCSV reads a registry CSV from r (headers required).
func LoadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, &errs.RegistryError{Source: "csv", Err: err}
	}
	for i, col := range csvColumns {
		if i >= len(header) || header[i] != col {
			return nil, &errs.RegistryError{Source: "csv", Err: fmt.Errorf("expected column %d to be %q, got %q", i, col, safeAt(header, i))}
		}
	}

	cat := &Catalog{byFQN: map[string]Entry{}, byMarket: map[string][]Entry{}}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &errs.RegistryError{Source: "csv", Err: err}
		}
		port, err := strconv.Atoi(rec[5])
		if err != nil {
			return nil, &errs.RegistryError{Source: "csv", Err: fmt.Errorf("row %v: invalid port %q: %w", rec, rec[5], err)}
		}
		e := Entry{
			Dataset: rec[0],
			Cluster: rec[1],
			DBType:  rec[2],
			Node:    rec[3],
			Host:    rec[4],
			Port:    port,
			PortEnv: rec[6],
			Env:     rec[7],
		}
		cat.byFQN[e.FQN()] = e
		marketKey := e.Dataset + "\x00" + e.Env
		cat.byMarket[marketKey] = append(cat.byMarket[marketKey], e)
	}
	return cat, nil
}

// LoadCSVFile opens and parses a registry CSV file at path.
func LoadCSVFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errs.RegistryError{Source: path, Err: err}
	}
	defer f.Close()
	return LoadCSV(f)
}

// Lookup returns the catalog entry for an exact FQN.
func (c *Catalog) Lookup(fqn string) (Entry, bool) {
	e, ok := c.byFQN[fqn]
	return e, ok
}

// ByMarket returns every entry for (market, env), in CSV row order.
func (c *Catalog) ByMarket(market, env string) []Entry {
	return c.byMarket[market+"\x00"+env]
}

// DSN resolves an entry's effective host/port (applying PortEnv) into
// a DSN, using scheme for the connection kind.
func (e Entry) DSN(scheme Scheme, user, password string) (DSN, error) {
	port, err := e.resolvedPort()
	if err != nil {
		return DSN{}, &errs.ConfigError{Err: err}
	}
	return DSN{Scheme: scheme, User: user, Password: password, Host: e.Host, Port: port}, nil
}

func safeAt(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}
