package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsOfJoin(t *testing.T) {
	assert.Equal(t, "aj[`sym`time;trades;quotes]", AsOf([]string{"sym", "time"}, "trades", "quotes"))
}

func TestLeftJoin(t *testing.T) {
	assert.Equal(t, "trades lj `sym xkey quotes", LeftJoin([]string{"sym"}, "trades", "quotes"))
}

func TestInnerJoin(t *testing.T) {
	assert.Equal(t, "trades ij `sym xkey quotes", InnerJoin([]string{"sym"}, "trades", "quotes"))
}

func TestWindowJoin(t *testing.T) {
	got := Window("w", []string{"sym"}, "trades", "quotes", []WindowAgg{
		{Func: "max", Column: "ask"},
		{Func: "min", Column: "bid"},
	})
	assert.Equal(t, "wj[w;`sym;trades;(quotes;(max;`ask);(min;`bid))]", got)
}
