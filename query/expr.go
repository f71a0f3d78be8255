// Package query implements the expression AST and functional-form
// compiler: a tree of column/literal/operator/aggregate nodes compiled
// to the server's bracket/adverb syntax (`?[t;W;B;A]` and friends).
// Nothing in this package touches a socket; Compile always returns a
// string deterministically for a given tree.
package query

import (
	"fmt"
	"strings"

	"qgo/wire"
)

// Expr is any node in the expression tree. Compile renders the node's
// deterministic textual form; Operands returns its
// immediate children, for callers that want to walk the tree without
// a type switch on every node kind.
type Expr interface {
	Compile() string
	Operands() []Expr
}

// Column references a table column by name. It compiles to its bare
// identifier — the only node that does.
type Column struct {
	Name string
}

func (c Column) Compile() string   { return c.Name }
func (c Column) Operands() []Expr  { return nil }

// namingForm renders e the way a by/select/update/exec dict value
// wants: a bare column compiles as a reference to that column (the
// server form for "reuse this existing column" is the column's own
// symbol, `name), any other expression compiles parenthesized as a
// parse tree — so a by-group on the bare column sym emits
// `(enlist `sym)!enlist `sym`.
func namingForm(e Expr) string {
	if c, ok := e.(Column); ok {
		return "`" + c.Name
	}
	return "(" + e.Compile() + ")"
}

// Literal wraps a wire value (scalar or vector) as an expression node,
// rendered in the server's literal syntax.
type Literal struct {
	Value wire.TV
}

func (l Literal) Compile() string  { return renderLiteral(l.Value) }
func (l Literal) Operands() []Expr { return nil }

// BinOp is a two-operand operator expression. Op is the user-facing
// symbol ("+", "-", "*", "/", "==", "!=", "&", "|", "mod", ">", "<",
// ">=", "<="); opRender translates it to the server's own spelling.
type BinOp struct {
	Op       string
	LHS, RHS Expr
}

func (b BinOp) Compile() string {
	rendered, wordy := opRender(b.Op)
	if wordy {
		return fmt.Sprintf("(%s %s %s)", b.LHS.Compile(), rendered, b.RHS.Compile())
	}
	return fmt.Sprintf("(%s%s%s)", b.LHS.Compile(), rendered, b.RHS.Compile())
}

func (b BinOp) Operands() []Expr { return []Expr{b.LHS, b.RHS} }

// UnaryOp is a single-operand operator expression: "neg" or "not".
type UnaryOp struct {
	Op      string
	Operand Expr
}

func (u UnaryOp) Compile() string  { return fmt.Sprintf("(%s %s)", u.Op, u.Operand.Compile()) }
func (u UnaryOp) Operands() []Expr { return []Expr{u.Operand} }

// Call invokes a named server function with positional arguments:
// "f[a1;a2;...]".
type Call struct {
	Func string
	Args []Expr
}

func (c Call) Compile() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.Compile()
	}
	return fmt.Sprintf("%s[%s]", c.Func, strings.Join(parts, ";"))
}

func (c Call) Operands() []Expr { return c.Args }

// Aggregate applies a named aggregate function to a column (or to no
// column at all, for "count"). Adverb, when set to "each" or "peach",
// suffixes the rendered call with that adverb.
type Aggregate struct {
	Func   string
	Column Expr // nil for Aggregate(count, none)
	Adverb string
}

func (a Aggregate) Compile() string {
	var base string
	if a.Column == nil {
		base = fmt.Sprintf("%s i", a.Func)
	} else {
		base = fmt.Sprintf("%s %s", a.Func, a.Column.Compile())
	}
	switch a.Adverb {
	case "":
		return base
	case "each", "peach":
		return base + " " + a.Adverb
	default:
		return base
	}
}

func (a Aggregate) Operands() []Expr {
	if a.Column == nil {
		return nil
	}
	return []Expr{a.Column}
}

// Each wraps inner with the "each" adverb. Chaining Each/Peach on a
// node that is already an Adverb wrapper is a construction error the
// caller must avoid — the wire form has no way to represent it.
func Each(inner Expr) Expr  { return Adverb{Inner: inner, Kind: "each"} }
func Peach(inner Expr) Expr { return Adverb{Inner: inner, Kind: "peach"} }

// Adverb is the generic each/peach wrapper for any expression, not
// just Aggregate (which carries its own Adverb field for the common
// case). Compile does not detect nesting: Adverb{Inner: Adverb{...}}
// renders both adverbs one after the other ("f x each peach").
type Adverb struct {
	Inner Expr
	Kind  string // "each" or "peach"
}

func (a Adverb) Compile() string  { return a.Inner.Compile() + " " + a.Kind }
func (a Adverb) Operands() []Expr { return []Expr{a.Inner} }

// Xbar buckets a column into fixed-width bins of size n: "(n xbar c)".
type Xbar struct {
	Step Expr
	Col  Expr
}

func (x Xbar) Compile() string  { return fmt.Sprintf("(%s xbar %s)", x.Step.Compile(), x.Col.Compile()) }
func (x Xbar) Operands() []Expr { return []Expr{x.Step, x.Col} }

// Fby computes an aggregate per group without collapsing row count:
// "((f;c) fby g)".
type Fby struct {
	Agg   string
	Col   Expr
	Group Expr
}

func (f Fby) Compile() string {
	return fmt.Sprintf("((%s;%s) fby %s)", f.Agg, f.Col.Compile(), f.Group.Compile())
}

func (f Fby) Operands() []Expr { return []Expr{f.Col, f.Group} }

// Within tests membership in an inclusive range: "(c within (lo;hi))".
type Within struct {
	Col    Expr
	Lo, Hi Expr
}

func (w Within) Compile() string {
	return fmt.Sprintf("(%s within (%s;%s))", w.Col.Compile(), w.Lo.Compile(), w.Hi.Compile())
}

func (w Within) Operands() []Expr { return []Expr{w.Col, w.Lo, w.Hi} }

// Like matches a column against a server glob pattern: `(c like "p")`.
type Like struct {
	Col     Expr
	Pattern string
}

func (l Like) Compile() string  { return fmt.Sprintf("(%s like %q)", l.Col.Compile(), l.Pattern) }
func (l Like) Operands() []Expr { return []Expr{l.Col} }

// In tests set membership: "(c in (vec...))". Vec is itself an
// expression so callers can pass either a Literal vector or a nested
// column/call result.
type In struct {
	Col Expr
	Vec Expr
}

func (i In) Compile() string  { return fmt.Sprintf("(%s in %s)", i.Col.Compile(), i.Vec.Compile()) }
func (i In) Operands() []Expr { return []Expr{i.Col, i.Vec} }

// AscDesc wraps a column for sort-key position: "asc c" or "desc c".
type AscDesc struct {
	Col  Expr
	Desc bool
}

func (a AscDesc) Compile() string {
	if a.Desc {
		return "desc " + a.Col.Compile()
	}
	return "asc " + a.Col.Compile()
}

func (a AscDesc) Operands() []Expr { return []Expr{a.Col} }
