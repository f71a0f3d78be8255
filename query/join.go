package query

import "strings"

// WindowAgg pairs an aggregate function name with the right-side
// column it draws from, for Window's per-window aggregate list.
type WindowAgg struct {
	Func   string
	Column string
}

// AsOf compiles an as-of join: `aj[`c1`c2;L;R]`.
func AsOf(keys []string, left, right string) string {
	return "aj[" + symbolVector(keys) + ";" + left + ";" + right + "]"
}

// LeftJoin compiles a left join: L lj `c1`c2 xkey R.
func LeftJoin(keys []string, left, right string) string {
	return left + " lj " + symbolVector(keys) + " xkey " + right
}

// InnerJoin compiles an inner join: L ij `c1`c2 xkey R.
func InnerJoin(keys []string, left, right string) string {
	return left + " ij " + symbolVector(keys) + " xkey " + right
}

// Window compiles a window join: wj[windows;`c1`c2;L;(R;(f1;`v1);(f2;`v2);...)].
func Window(windows string, keys []string, left, right string, aggs []WindowAgg) string {
	parts := make([]string, 0, len(aggs)+1)
	parts = append(parts, right)
	for _, a := range aggs {
		parts = append(parts, "("+a.Func+";`"+a.Column+")")
	}
	return "wj[" + windows + ";" + symbolVector(keys) + ";" + left + ";(" + strings.Join(parts, ";") + ")]"
}
