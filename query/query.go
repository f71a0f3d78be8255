package query

import (
	"strconv"
	"strings"

	"qgo/wire"
)

// Model is the minimal shape query needs from a bound schema: its
// table name and, for Insert, its declared column order.
// model.SchemaDescriptor satisfies this structurally, so query never
// imports model (and model does not import query either).
type Model interface {
	TableName() string
	FieldNames() []string
}

// aliasedExpr is one projection, by-expression or assignment entry:
// an optional alias paired with its expression, in call order.
type aliasedExpr struct {
	Alias string
	Expr  Expr
}

// Query is the shared shape behind Select/Update/Delete/Insert/Exec:
// projections, where-predicates, by-expressions, set-assignments,
// limit/offset. Build one with Select/Update/Delete/
// Insert/Exec below; the zero value is not independently useful.
type Query struct {
	model   Model
	kind    queryKind
	where   []Expr
	by      []aliasedExpr
	project []aliasedExpr
	assign  []aliasedExpr
	delCols []string
	rows    []map[string]wire.TV

	limitSet  bool
	limit     int
	offsetSet bool
	offset    int
}

type queryKind int

const (
	kindSelect queryKind = iota
	kindUpdate
	kindDelete
	kindInsert
	kindExec
)

// Model returns the model a query is bound to, so callers outside
// this package (session.Session.Exec) can recover a concrete schema
// for result binding without query importing model.
func (q *Query) Model() Model { return q.model }

// Select starts a select query bound to m.
func Select(m Model) *Query { return &Query{model: m, kind: kindSelect} }

// Update starts an update query bound to m.
func Update(m Model) *Query { return &Query{model: m, kind: kindUpdate} }

// Delete starts a delete query bound to m. Use Where for a row delete
// or Columns for a column delete; the two are mutually exclusive.
func Delete(m Model) *Query { return &Query{model: m, kind: kindDelete} }

// Exec starts an exec query bound to m (returns a vector or a dict,
// never wrapped as a ResultSet).
func Exec(m Model) *Query { return &Query{model: m, kind: kindExec} }

// Insert starts an insert query bound to m, given whole rows as
// column-name -> value maps.
func Insert(m Model, rows ...map[string]wire.TV) *Query {
	return &Query{model: m, kind: kindInsert, rows: rows}
}

// Where AND-joins predicates onto the query. Select.Where(p1, p2) and
// Select.Where(p1).Where(p2) compile identically.
func (q *Query) Where(preds ...Expr) *Query {
	q.where = append(q.where, preds...)
	return q
}

// By adds a group-by expression under alias.
func (q *Query) By(alias string, e Expr) *Query {
	q.by = append(q.by, aliasedExpr{Alias: alias, Expr: e})
	return q
}

// Project adds a select column under alias.
func (q *Query) Project(alias string, e Expr) *Query {
	q.project = append(q.project, aliasedExpr{Alias: alias, Expr: e})
	return q
}

// Set adds an update assignment under alias.
func (q *Query) Set(alias string, e Expr) *Query {
	q.assign = append(q.assign, aliasedExpr{Alias: alias, Expr: e})
	return q
}

// Columns switches a Delete query to column-delete mode.
func (q *Query) Columns(names ...string) *Query {
	q.delCols = append(q.delCols, names...)
	return q
}

// Limit caps the result to n rows.
func (q *Query) Limit(n int) *Query {
	q.limit, q.limitSet = n, true
	return q
}

// Offset skips the first n rows.
func (q *Query) Offset(n int) *Query {
	q.offset, q.offsetSet = n, true
	return q
}

// Compile renders the query in the server's functional form. Output is
// byte-identical across calls for an unmodified tree.
func (q *Query) Compile() string {
	var base string
	switch q.kind {
	case kindSelect:
		base = q.compileSelect("?")
	case kindUpdate:
		base = q.compileUpdate()
	case kindDelete:
		base = q.compileDelete()
	case kindInsert:
		return q.compileInsert()
	case kindExec:
		base = q.compileExec()
	}
	return q.page(base)
}

func (q *Query) page(base string) string {
	if q.offsetSet {
		base = strconv.Itoa(q.offset) + "_(" + base + ")"
	}
	if q.limitSet {
		base = strconv.Itoa(q.limit) + "#(" + base + ")"
	}
	return base
}

func (q *Query) compileWhere() string {
	if len(q.where) == 0 {
		return "()"
	}
	parts := make([]string, len(q.where))
	for i, p := range q.where {
		parts[i] = p.Compile()
	}
	return "enlist (" + strings.Join(parts, ";") + ")"
}

func (q *Query) compileBy() string {
	if len(q.by) == 0 {
		return "0b"
	}
	aliases := make([]string, len(q.by))
	exprs := make([]string, len(q.by))
	for i, b := range q.by {
		aliases[i] = b.Alias
		exprs[i] = namingForm(b.Expr)
	}
	return aliasVector(aliases) + "!" + exprList(exprs)
}

func (q *Query) compileSelect(fn string) string {
	t := q.model.TableName()
	w := q.compileWhere()
	b := q.compileBy()
	a := "()"
	if len(q.project) > 0 {
		aliases := make([]string, len(q.project))
		exprs := make([]string, len(q.project))
		for i, p := range q.project {
			aliases[i] = p.Alias
			exprs[i] = namingForm(p.Expr)
		}
		a = aliasVector(aliases) + "!" + exprList(exprs)
	}
	return fn + "[" + t + ";" + w + ";" + b + ";" + a + "]"
}

func (q *Query) compileUpdate() string {
	t := q.model.TableName()
	w := q.compileWhere()
	b := q.compileBy()
	a := "()"
	if len(q.assign) > 0 {
		aliases := make([]string, len(q.assign))
		exprs := make([]string, len(q.assign))
		for i, s := range q.assign {
			aliases[i] = s.Alias
			exprs[i] = namingForm(s.Expr)
		}
		a = aliasVector(aliases) + "!" + exprList(exprs)
	}
	return "![" + t + ";" + w + ";" + b + ";" + a + "]"
}

func (q *Query) compileDelete() string {
	t := q.model.TableName()
	if len(q.delCols) > 0 {
		return "![" + t + ";();0b;" + symbolVector(q.delCols) + "]"
	}
	w := q.compileWhere()
	return "![" + t + ";" + w + ";0b;()]"
}

func (q *Query) compileExec() string {
	t := q.model.TableName()
	w := q.compileWhere()
	b := q.compileBy()
	var a string
	switch {
	case len(q.project) == 1 && len(q.by) == 0:
		a = "`" + q.project[0].Alias
	case len(q.project) == 0:
		a = "()"
	default:
		aliases := make([]string, len(q.project))
		exprs := make([]string, len(q.project))
		for i, p := range q.project {
			aliases[i] = p.Alias
			exprs[i] = namingForm(p.Expr)
		}
		a = aliasVector(aliases) + "!" + exprList(exprs)
	}
	return "?[" + t + ";" + w + ";" + b + ";" + a + "]"
}

// compileInsert transposes the bound rows into per-column vector (or
// mixed-list) literals in the model's declared field order, then
// emits `t insert (c1;c2;...)`.
func (q *Query) compileInsert() string {
	t := q.model.TableName()
	fields := q.model.FieldNames()
	cols := make([]string, len(fields))
	for i, f := range fields {
		vals := make([]wire.TV, len(q.rows))
		for r, row := range q.rows {
			vals[r] = row[f]
		}
		cols[i] = compileColumnLiteral(vals)
	}
	return "`" + t + " insert (" + strings.Join(cols, ";") + ")"
}

// compileColumnLiteral renders a transposed column as a uniform
// vector literal when every value shares a kind and is non-null, or
// as a mixed-list literal otherwise.
func compileColumnLiteral(vals []wire.TV) string {
	uniform := true
	var kind wire.Kind
	for i, v := range vals {
		sv, ok := v.(wire.Value)
		if !ok || sv.IsNull() {
			uniform = false
			break
		}
		if i == 0 {
			kind = sv.K
		} else if sv.K != kind {
			uniform = false
			break
		}
	}
	if uniform && len(vals) > 0 {
		elems := make([]any, len(vals))
		for i, v := range vals {
			elems[i] = v.(wire.Value).Val
		}
		return renderLiteral(wire.Vector{K: kind, Elems: elems})
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = renderLiteral(v)
	}
	return "(" + strings.Join(parts, ";") + ")"
}

func aliasVector(aliases []string) string {
	if len(aliases) == 1 {
		return "(enlist `" + aliases[0] + ")"
	}
	return symbolVector(aliases)
}

func symbolVector(names []string) string {
	var b strings.Builder
	for _, n := range names {
		b.WriteByte('`')
		b.WriteString(n)
	}
	return b.String()
}

func exprList(exprs []string) string {
	if len(exprs) == 1 {
		return "enlist " + exprs[0]
	}
	return "(" + strings.Join(exprs, ";") + ")"
}
