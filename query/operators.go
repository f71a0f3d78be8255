package query

// opRender translates a BinOp's user-facing operator symbol into the
// server's own spelling: + - * % & | and the comparisons pass through,
// / maps to % (the server's division), == to =, != to <>, and modulo
// uses the infix keyword form `a mod b`. wordy reports whether the
// rendered form is a keyword needing surrounding spaces ("mod") rather
// than a tight symbol ("+").
func opRender(op string) (rendered string, wordy bool) {
	switch op {
	case "/":
		return "%", false
	case "==":
		return "=", false
	case "!=":
		return "<>", false
	case "mod":
		return "mod", true
	default:
		return op, false
	}
}

// Explicit method forms for building operator expressions. Go has no
// operator overloading, so these are the only surface.

func toExpr(v any) Expr {
	switch t := v.(type) {
	case Expr:
		return t
	default:
		return Literal{Value: toTV(v)}
	}
}

func (c Column) Gt(v any) Expr  { return BinOp{Op: ">", LHS: c, RHS: toExpr(v)} }
func (c Column) Ge(v any) Expr  { return BinOp{Op: ">=", LHS: c, RHS: toExpr(v)} }
func (c Column) Lt(v any) Expr  { return BinOp{Op: "<", LHS: c, RHS: toExpr(v)} }
func (c Column) Le(v any) Expr  { return BinOp{Op: "<=", LHS: c, RHS: toExpr(v)} }
func (c Column) Eq(v any) Expr  { return BinOp{Op: "==", LHS: c, RHS: toExpr(v)} }
func (c Column) Ne(v any) Expr  { return BinOp{Op: "!=", LHS: c, RHS: toExpr(v)} }
func (c Column) Add(v any) Expr { return BinOp{Op: "+", LHS: c, RHS: toExpr(v)} }
func (c Column) Sub(v any) Expr { return BinOp{Op: "-", LHS: c, RHS: toExpr(v)} }
func (c Column) Mul(v any) Expr { return BinOp{Op: "*", LHS: c, RHS: toExpr(v)} }
func (c Column) Div(v any) Expr { return BinOp{Op: "/", LHS: c, RHS: toExpr(v)} }
func (c Column) Mod(v any) Expr { return BinOp{Op: "mod", LHS: c, RHS: toExpr(v)} }
func (c Column) And(v any) Expr { return BinOp{Op: "&", LHS: c, RHS: toExpr(v)} }
func (c Column) Or(v any) Expr  { return BinOp{Op: "|", LHS: c, RHS: toExpr(v)} }

func (c Column) Within(lo, hi any) Expr { return Within{Col: c, Lo: toExpr(lo), Hi: toExpr(hi)} }
func (c Column) LikeExpr(pattern string) Expr { return Like{Col: c, Pattern: pattern} }
func (c Column) InVector(vec Expr) Expr { return In{Col: c, Vec: vec} }
func (c Column) Asc() Expr  { return AscDesc{Col: c} }
func (c Column) Desc() Expr { return AscDesc{Col: c, Desc: true} }

// Not negates a boolean expression: "(not e)".
func Not(e Expr) Expr { return UnaryOp{Op: "not", Operand: e} }

// Neg arithmetically negates e: "(neg e)".
func Neg(e Expr) Expr { return UnaryOp{Op: "neg", Operand: e} }
