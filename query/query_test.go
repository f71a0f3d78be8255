package query

import (
	"testing"

	"qgo/wire"

	"github.com/stretchr/testify/assert"
)

type stubModel struct {
	name   string
	fields []string
}

func (m stubModel) TableName() string    { return m.name }
func (m stubModel) FieldNames() []string { return m.fields }

var trade = stubModel{name: "trade", fields: []string{"sym", "price", "size"}}

func sym(name string) Column { return Column{Name: name} }
func long(n int64) Expr      { return Literal{Value: wire.Value{K: wire.KLong, Val: wire.Long(n)}} }

func TestSelectCompilesPredicateAndGroup(t *testing.T) {
	q := Select(trade).
		Where(sym("price").Gt(100)).
		By("sym", sym("sym"))
	got := q.Compile()
	assert.Equal(t, "?[trade;enlist ((price>100));(enlist `sym)!enlist `sym;()]", got)
}

func TestWhereCallOrderDoesNotAffectOutput(t *testing.T) {
	p1, p2 := sym("price").Gt(100), sym("size").Lt(10)
	a := Select(trade).Where(p1, p2).Compile()
	b := Select(trade).Where(p1).Where(p2).Compile()
	assert.Equal(t, a, b)
}

func TestProjectionAggregateParenthesized(t *testing.T) {
	q := Select(trade).
		By("sym", sym("sym")).
		Project("avg_price", Aggregate{Func: "avg", Column: sym("price")})
	got := q.Compile()
	assert.Contains(t, got, "(enlist `avg_price)!enlist (avg price)")
}

func TestLimitOffsetComposition(t *testing.T) {
	q := Select(trade).Offset(5).Limit(10)
	assert.Equal(t, "10#(5_(?[trade;();0b;()]))", q.Compile())
}

func TestExecSingleColumnBareSymbol(t *testing.T) {
	q := Exec(trade).Project("price", sym("price"))
	assert.Equal(t, "?[trade;();0b;`price]", q.Compile())
}

func TestExecMultiColumnDict(t *testing.T) {
	q := Exec(trade).Project("sym", sym("sym")).Project("price", sym("price"))
	got := q.Compile()
	assert.Contains(t, got, "`sym`price!")
}

func TestUpdateAssignment(t *testing.T) {
	q := Update(trade).Where(sym("sym").Eq("AAPL")).Set("price", long(0))
	got := q.Compile()
	assert.Equal(t, "![trade;enlist ((sym=`AAPL));0b;(enlist `price)!enlist (0)]", got)
}

func TestDeleteByPredicate(t *testing.T) {
	q := Delete(trade).Where(sym("sym").Eq("AAPL"))
	assert.Equal(t, "![trade;enlist ((sym=`AAPL));0b;()]", q.Compile())
}

func TestDeleteByColumns(t *testing.T) {
	q := Delete(trade).Columns("price", "size")
	assert.Equal(t, "![trade;();0b;`price`size]", q.Compile())
}

func TestInsertUniformColumnsTransposed(t *testing.T) {
	rows := []map[string]wire.TV{
		{
			"sym":   wire.Value{K: wire.KSymbol, Val: wire.Symbol("AAPL")},
			"price": wire.Value{K: wire.KFloat, Val: wire.Float(150.25)},
			"size":  wire.Value{K: wire.KLong, Val: wire.Long(10)},
		},
		{
			"sym":   wire.Value{K: wire.KSymbol, Val: wire.Symbol("GOOG")},
			"price": wire.Value{K: wire.KFloat, Val: wire.Float(2800.0)},
			"size":  wire.Value{K: wire.KLong, Val: wire.Long(5)},
		},
	}
	got := Insert(trade, rows...).Compile()
	assert.Equal(t, "`trade insert (`AAPL`GOOG;150.25 2800.0;10 5)", got)
}

func TestInsertHeterogeneousColumnBecomesMixedList(t *testing.T) {
	rows := []map[string]wire.TV{
		{
			"sym":   wire.Value{K: wire.KSymbol, Val: wire.Symbol("AAPL")},
			"price": wire.Value{K: wire.KFloat, Val: wire.Float(1.5)},
			"size":  wire.Value{K: wire.KLong, Val: wire.Long(1)},
		},
		{
			"sym":   wire.NewNull(wire.KSymbol),
			"price": wire.Value{K: wire.KFloat, Val: wire.Float(2.5)},
			"size":  wire.Value{K: wire.KLong, Val: wire.Long(2)},
		},
	}
	got := Insert(trade, rows...).Compile()
	// sym has a null, so its column renders as a mixed list instead of a
	// uniform symbol vector.
	assert.Contains(t, got, "(`AAPL;`)")
}
