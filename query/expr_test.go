package query

import (
	"testing"

	"qgo/wire"

	"github.com/stretchr/testify/assert"
)

func TestColumnCompilesBare(t *testing.T) {
	assert.Equal(t, "price", Column{Name: "price"}.Compile())
}

func TestBinOpDivisionRemapsToPercent(t *testing.T) {
	e := BinOp{Op: "/", LHS: Column{Name: "a"}, RHS: Column{Name: "b"}}
	assert.Equal(t, "(a%b)", e.Compile())
}

func TestBinOpModUsesWordyInfix(t *testing.T) {
	e := BinOp{Op: "mod", LHS: Column{Name: "a"}, RHS: Column{Name: "b"}}
	assert.Equal(t, "(a mod b)", e.Compile())
}

func TestBinOpEqualityRemaps(t *testing.T) {
	assert.Equal(t, "(a=b)", BinOp{Op: "==", LHS: Column{Name: "a"}, RHS: Column{Name: "b"}}.Compile())
	assert.Equal(t, "(a<>b)", BinOp{Op: "!=", LHS: Column{Name: "a"}, RHS: Column{Name: "b"}}.Compile())
}

func TestUnaryOpForms(t *testing.T) {
	assert.Equal(t, "(not a)", Not(Column{Name: "a"}).Compile())
	assert.Equal(t, "(neg a)", Neg(Column{Name: "a"}).Compile())
}

func TestAggregateForms(t *testing.T) {
	assert.Equal(t, "avg price", Aggregate{Func: "avg", Column: Column{Name: "price"}}.Compile())
	assert.Equal(t, "count i", Aggregate{Func: "count"}.Compile())
	assert.Equal(t, "avg price each", Aggregate{Func: "avg", Column: Column{Name: "price"}, Adverb: "each"}.Compile())
	assert.Equal(t, "avg price peach", Aggregate{Func: "avg", Column: Column{Name: "price"}, Adverb: "peach"}.Compile())
}

func TestEachPeachWrapAnyExpr(t *testing.T) {
	e := Each(Call{Func: "f", Args: []Expr{Column{Name: "x"}}})
	assert.Equal(t, "f[x] each", e.Compile())
}

func TestXbar(t *testing.T) {
	e := Xbar{Step: Literal{Value: wire.Value{K: wire.KLong, Val: wire.Long(5)}}, Col: Column{Name: "time"}}
	assert.Equal(t, "(5 xbar time)", e.Compile())
}

func TestFby(t *testing.T) {
	e := Fby{Agg: "avg", Col: Column{Name: "price"}, Group: Column{Name: "sym"}}
	assert.Equal(t, "((avg;price) fby sym)", e.Compile())
}

func TestWithin(t *testing.T) {
	e := Within{
		Col: Column{Name: "price"},
		Lo:  Literal{Value: wire.Value{K: wire.KLong, Val: wire.Long(1)}},
		Hi:  Literal{Value: wire.Value{K: wire.KLong, Val: wire.Long(10)}},
	}
	assert.Equal(t, "(price within (1;10))", e.Compile())
}

func TestLike(t *testing.T) {
	e := Like{Col: Column{Name: "sym"}, Pattern: "AAP*"}
	assert.Equal(t, `(sym like "AAP*")`, e.Compile())
}

func TestIn(t *testing.T) {
	vec := Literal{Value: wire.Vector{K: wire.KSymbol, Elems: []any{wire.Symbol("AAPL"), wire.Symbol("GOOG")}}}
	e := In{Col: Column{Name: "sym"}, Vec: vec}
	assert.Equal(t, "(sym in `AAPL`GOOG)", e.Compile())
}

func TestAscDesc(t *testing.T) {
	assert.Equal(t, "asc price", AscDesc{Col: Column{Name: "price"}}.Compile())
	assert.Equal(t, "desc price", AscDesc{Col: Column{Name: "price"}, Desc: true}.Compile())
}

func TestColumnMethodForms(t *testing.T) {
	assert.Equal(t, "(price>100)", Column{Name: "price"}.Gt(100).Compile())
	assert.Equal(t, "(sym=`AAPL)", Column{Name: "sym"}.Eq("AAPL").Compile())
}
