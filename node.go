// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"modernc.org/token"
)

var (
	_ Expr = (*BadExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*DerefExpr)(nil)
	_ Expr = (*FieldExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*RandomExpr)(nil)
	_ Expr = (*RangeExpr)(nil)
	_ Expr = (*RefArg)(nil)
	_ Expr = (*SetExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*VarRef)(nil)

	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*Block)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*CallStmt)(nil)
	_ Stmt = (*CaseStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*InitStmt)(nil)
	_ Stmt = (*Nop)(nil)
	_ Stmt = (*RandomizeStmt)(nil)
	_ Stmt = (*RepeatStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
)

// Node is an AST node.
type Node interface {
	Position() token.Position
}

// Expr is an expression node.
type Expr interface {
	Node
	Type() Type
}

// Stmt is a statement node.
type Stmt interface {
	Node
	isStmt()
}

type node struct {
	Pos token.Position
}

func (n *node) Position() token.Position { return n.Pos }

type stmt struct{ node }

func (stmt) isStmt() {}

func at(pos token.Position) node { return node{pos} }

func stmtAt(pos token.Position) stmt { return stmt{node{pos}} }

// Literal is a constant.
type Literal struct {
	node
	Value Constant `PrettyPrint:"stringer"`
}

func (n *Literal) Type() Type { return n.Value.Type() }

// BinaryExpr is X Op Y. Folded is the value of a constant expression.
type BinaryExpr struct {
	node
	Op     Kind `PrettyPrint:"stringer"`
	X, Y   Expr
	T      Type     `PrettyPrint:"stringer"`
	Folded Constant `PrettyPrint:"stringer"`
}

func (n *BinaryExpr) Type() Type { return n.T }

// UnaryExpr is Op X.
type UnaryExpr struct {
	node
	Op     Kind `PrettyPrint:"stringer"`
	X      Expr
	T      Type     `PrettyPrint:"stringer"`
	Folded Constant `PrettyPrint:"stringer"`
}

func (n *UnaryExpr) Type() Type { return n.T }

// VarRef reads or designates a variable. Depth is the number of scopes
// between the use and the declaring scope. ByRef is set when the slot holds a
// reference to the variable, not the variable itself.
type VarRef struct {
	node
	Name  string
	Slot  int
	Depth int
	ByRef bool
	T     Type `PrettyPrint:"stringer"`
}

func (n *VarRef) Type() Type { return n.T }

// IndexExpr is X[Index].
type IndexExpr struct {
	node
	X     Expr
	Index Expr
	T     Type `PrettyPrint:"stringer"`
}

func (n *IndexExpr) Type() Type { return n.T }

// FieldExpr is X.Name, Slot is the field index.
type FieldExpr struct {
	node
	X    Expr
	Name string
	Slot int
	T    Type `PrettyPrint:"stringer"`
}

func (n *FieldExpr) Type() Type { return n.T }

// DerefExpr is X^.
type DerefExpr struct {
	node
	X Expr
	T Type `PrettyPrint:"stringer"`
}

func (n *DerefExpr) Type() Type { return n.T }

// CallExpr calls Sub. For functions whose result depends on the argument the
// type is computed at the call site.
type CallExpr struct {
	node
	Sub  *Subroutine `PrettyPrint:"stringer"`
	Args []Expr
	T    Type `PrettyPrint:"stringer"`
}

func (n *CallExpr) Type() Type { return n.T }

// RefArg passes the variable designated by X by reference.
type RefArg struct {
	node
	X Expr
}

func (n *RefArg) Type() Type { return n.X.Type() }

// RangeExpr is Lo..Hi in a set constructor.
type RangeExpr struct {
	node
	Lo, Hi Expr
}

func (n *RangeExpr) Type() Type { return n.Lo.Type() }

// SetExpr is a set constructor [a, b..c].
type SetExpr struct {
	node
	Elems  []Expr
	T      *SetType `PrettyPrint:"stringer"`
	Folded Constant `PrettyPrint:"stringer"`
}

func (n *SetExpr) Type() Type { return n.T }

// RandomExpr is random or random(Max).
type RandomExpr struct {
	node
	Max Expr
}

func (n *RandomExpr) Type() Type {
	if n.Max == nil {
		return Real
	}

	return Long
}

// BadExpr stands for an expression that could not be built.
type BadExpr struct {
	node
}

func (n *BadExpr) Type() Type { return Unknown }

// Nop is the empty statement.
type Nop struct{ stmt }

// Block is a statement sequence.
type Block struct {
	stmt
	List []Stmt
}

// AssignStmt is Target := Value.
type AssignStmt struct {
	stmt
	Target Expr
	Value  Expr
}

// CallStmt is a procedure call or a function call with its result ignored.
type CallStmt struct {
	stmt
	Call *CallExpr
}

// IfStmt is if Cond then Then else Else. Else may be nil.
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt
}

// ForStmt is for Var := From to|downto To do Body.
type ForStmt struct {
	stmt
	Var  *VarRef
	From Expr
	To   Expr
	Down bool
	Body Stmt
}

// WhileStmt is while Cond do Body.
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

// RepeatStmt is repeat Body until Cond.
type RepeatStmt struct {
	stmt
	Body *Block
	Cond Expr
}

// CaseClause is Labels: Body.
type CaseClause struct {
	Labels []Constant
	Body   Stmt
}

// CaseStmt is case X of Clauses else Else end. Else may be nil.
type CaseStmt struct {
	stmt
	X       Expr
	Clauses []*CaseClause
	Else    Stmt
}

// RandomizeStmt seeds the random number generator.
type RandomizeStmt struct{ stmt }

// BreakStmt leaves the innermost loop.
type BreakStmt struct{ stmt }

// InitStmt stores Value into slot Slot before the body runs.
type InitStmt struct {
	stmt
	Slot  int
	Name  string
	Value Value
}

// RootNode is the executable body of the program or of a subroutine,
// together with the layout of its frame.
type RootNode struct {
	Name   string
	Frame  []*Slot
	Body   *Block
	Result int // Frame index of the function result, -1 for procedures and the program.
}
