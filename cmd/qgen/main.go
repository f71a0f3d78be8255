// Command qgen connects to a server (directly or via service
// discovery), reflects one or more tables, and writes a Go source file
// per table declaring the table's SchemaDescriptor as a qgo/model
// value — so callers get a concrete, named model instead of always
// reflecting at runtime.
package main

import (
	"fmt"
	"os"
	"strings"

	"qgo/discovery"
	"qgo/model"
	"qgo/registry"
	"qgo/session"
	"qgo/transport"
	"qgo/wire"

	"github.com/spf13/cobra"
)

// exitCode tracks the tool's three-way exit contract (0 success,
// 1 config error, 2 RPC error) without os.Exit-ing from inside RunE
// (cobra already prints the error).
type exitCode int

const (
	exitOK        exitCode = 0
	exitConfig    exitCode = 1
	exitRPCFailed exitCode = 2
)

func main() {
	os.Exit(int(run(os.Args[1:])))
}

func run(args []string) exitCode {
	var (
		host, user, password string
		port                 int
		useTLS               bool
		service, market, env string
		tablesFlag           string
		output               string
	)

	code := exitOK

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Reflect server tables and generate Go model files",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := connectSession(host, port, user, password, useTLS, service, market, env)
			if err != nil {
				code = exitConfig
				return fmt.Errorf("qgen: configuration error: %w", err)
			}
			defer sess.Close()

			tableNames, err := resolveTables(sess, tablesFlag)
			if err != nil {
				code = exitRPCFailed
				return fmt.Errorf("qgen: %w", err)
			}

			if output == "" {
				output = "."
			}
			if err := os.MkdirAll(output, 0o755); err != nil {
				code = exitConfig
				return fmt.Errorf("qgen: creating output directory: %w", err)
			}

			for _, name := range tableNames {
				schema, err := sess.Reflect(name)
				if err != nil {
					code = exitRPCFailed
					return fmt.Errorf("qgen: reflecting %q: %w", name, err)
				}
				path := output + "/" + name + "_model.go"
				if err := os.WriteFile(path, []byte(generateModelFile(schema)), 0o644); err != nil {
					code = exitRPCFailed
					return fmt.Errorf("qgen: writing %s: %w", path, err)
				}
				fmt.Printf("generated %s\n", path)
			}
			return nil
		},
	}

	generateCmd.Flags().StringVar(&host, "host", "", "server host")
	generateCmd.Flags().IntVar(&port, "port", 0, "server port")
	generateCmd.Flags().StringVar(&user, "user", "", "server user")
	generateCmd.Flags().StringVar(&password, "password", "", "server password")
	generateCmd.Flags().BoolVar(&useTLS, "tls", false, "use TLS")
	generateCmd.Flags().StringVar(&service, "service", "", "registry CSV file for service discovery")
	generateCmd.Flags().StringVar(&market, "market", "", "service discovery market (dataset)")
	generateCmd.Flags().StringVar(&env, "env", "", "service discovery environment")
	generateCmd.Flags().StringVar(&tablesFlag, "tables", "", "comma-separated table names (default: every table)")
	generateCmd.Flags().StringVar(&output, "output", ".", "output directory")

	rootCmd := &cobra.Command{Use: "qgen", Short: "qgo model code generator"}
	rootCmd.AddCommand(generateCmd)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code == exitOK {
			// cobra itself rejected the invocation (bad flags/args)
			// before RunE ran to set a more specific code.
			code = exitConfig
		}
		return code
	}
	return exitOK
}

// connectSession opens a Session either directly from --host/--port or
// via --service/--market/--env service discovery.
func connectSession(host string, port int, user, password string, useTLS bool, service, market, env string) (*session.Session, error) {
	if service != "" {
		if market == "" || env == "" {
			return nil, fmt.Errorf("--service requires --market and --env")
		}
		cat, err := registry.LoadCSVFile(service)
		if err != nil {
			return nil, err
		}
		scheme := registry.SchemeKDB
		if useTLS {
			scheme = registry.SchemeKDBTLS
		}
		client := discovery.NewCatalogClient(cat, scheme, user, password)
		return client.Connect(market, env)
	}

	if host == "" || port == 0 {
		return nil, fmt.Errorf("either --service or both --host and --port are required")
	}
	return session.Connect(session.Options{
		Transport: transport.Options{
			Host:     host,
			Port:     port,
			User:     user,
			Password: password,
			TLS:      transport.TLSOptions{Enabled: useTLS},
		},
	})
}

// resolveTables returns the requested table set, or every table the
// server exposes when tablesFlag is empty.
func resolveTables(sess *session.Session, tablesFlag string) ([]string, error) {
	if tablesFlag == "" {
		return sess.Tables()
	}
	parts := strings.Split(tablesFlag, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// generateModelFile renders a Go source file declaring schema as a
// package-level qgo/model.SchemaDescriptor.
func generateModelFile(schema *model.SchemaDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by qgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package models\n\n")
	fmt.Fprintf(&b, "import (\n\t\"qgo/model\"\n\t\"qgo/wire\"\n)\n\n")
	fmt.Fprintf(&b, "var %s = mustBuild%s()\n\n", exportedName(schema.Name), exportedName(schema.Name))
	fmt.Fprintf(&b, "func mustBuild%s() *model.SchemaDescriptor {\n", exportedName(schema.Name))
	fmt.Fprintf(&b, "\ts, err := model.New(%q,\n", schema.Name)
	for _, f := range schema.Fields {
		fmt.Fprintf(&b, "\t\t%s,\n", fieldLiteral(f))
	}
	fmt.Fprintf(&b, "\t)\n\tif err != nil {\n\t\tpanic(err)\n\t}\n\tmodel.Register(s)\n\treturn s\n}\n")
	return b.String()
}

func fieldLiteral(f model.Field) string {
	var base string
	if f.ElemKind != nil {
		base = fmt.Sprintf("model.MixedOf(%q, %s)", f.Name, kindConst(*f.ElemKind))
	} else {
		base = fmt.Sprintf("model.Scalar(%q, %s)", f.Name, kindConst(f.Kind))
	}
	if f.PrimaryKey {
		base += ".Key()"
	}
	if f.Nullable {
		base += ".Null()"
	}
	return base
}

// kindIdents maps a wire.Kind to the Go identifier generated source
// should reference (the wire package's exported Kxxx constant name).
var kindIdents = map[wire.Kind]string{
	wire.KBool: "KBool", wire.KGUID: "KGUID", wire.KByte: "KByte",
	wire.KShort: "KShort", wire.KInt: "KInt", wire.KLong: "KLong",
	wire.KReal: "KReal", wire.KFloat: "KFloat", wire.KChar: "KChar",
	wire.KSymbol: "KSymbol", wire.KTimestamp: "KTimestamp", wire.KMonth: "KMonth",
	wire.KDate: "KDate", wire.KDatetime: "KDatetime", wire.KTimespan: "KTimespan",
	wire.KMinute: "KMinute", wire.KSecond: "KSecond", wire.KTime: "KTime",
}

func kindConst(k wire.Kind) string {
	if ident, ok := kindIdents[k]; ok {
		return "wire." + ident
	}
	return fmt.Sprintf("wire.Kind(%d)", int8(k))
}

func exportedName(s string) string {
	if s == "" {
		return "Model"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
