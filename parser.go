// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"io"
	"strings"

	"modernc.org/token"
)

const defaultMinErrDist = 2

var (
	statementStart = newKindSet(IDENT, BEGIN, IF, FOR, WHILE, REPEAT, CASE, RANDOMIZE, BREAK)
	statementSync  = statementStart.union(newKindSet(SEMI))
	statementEnd   = newKindSet(END, UNTIL, EOF, DOT)
	emptyStatement = newKindSet(SEMI, END, ELSE, UNTIL)

	declStart  = newKindSet(CONST, TYPE, VAR, PROCEDURE, FUNCTION, BEGIN, IMPLEMENTATION, EOF)
	declFollow = declStart.union(newKindSet(IDENT))

	relOps = newKindSet(EQ, NE, LT, LE, GT, GE, IN)
	addOps = newKindSet(PLUS, MINUS)
	mulOps = newKindSet(STAR, SLASH, DIV, MOD)
)

// Config amends the behavior of a Parser. The zero value is ready to use.
type Config struct {
	// Units available to uses clauses. A successfully parsed unit is added
	// to it. Nil means a fresh registry of the builtin units.
	Units *Units
	// ErrorWriter, when not nil, receives every diagnostic as soon as it is
	// reported, formatted as "-- line L col C: message".
	ErrorWriter io.Writer
	// MinErrDist is the number of tokens that must be consumed after a
	// reported error before another one is reported. Values < 1 select 2.
	MinErrDist int
	// UTF8 decodes the source as UTF-8 even without a byte order mark.
	UTF8 bool
	// Trace writes every consumed token to stderr.
	Trace bool
}

// Program is the result of parsing a program or a unit.
type Program struct {
	Name        string
	Root        *RootNode
	Subroutines *Registry // User defined and builtin subroutines by qualified name.
	Unit        *Unit     // Non nil when the source is a unit.
}

// Parser is a recursive descent parser that binds names, checks types and
// builds the AST in a single pass. A Parser parses one source.
type Parser struct {
	cfg     *Config
	errs    ErrorList
	f       *factory
	la      *Token // Lookahead.
	scanner *Scanner
	t       *Token // Last consumed token.

	errDist    int
	minErrDist int
	tokens     int
}

// NewParser returns a Parser reading b. The name is used in positions.
func NewParser(name string, b *Buffer, cfg *Config) (*Parser, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	s, err := newScanner(name, b, cfg.UTF8)
	if err != nil {
		return nil, err
	}

	p := &Parser{cfg: cfg, scanner: s, minErrDist: cfg.MinErrDist}
	if p.minErrDist < 1 {
		p.minErrDist = defaultMinErrDist
	}
	p.errDist = p.minErrDist
	units := cfg.Units
	if units == nil {
		units = NewUnits()
	}
	p.f = newFactory(p, units)
	return p, nil
}

// ParseFile parses the named file.
func ParseFile(name string, cfg *Config) (*Program, error) {
	b, err := OpenBuffer(name)
	if err != nil {
		return nil, err
	}

	defer b.Close()

	return parseBuffer(name, b, cfg)
}

// ParseBytes parses src.
func ParseBytes(name string, src []byte, cfg *Config) (*Program, error) {
	return parseBuffer(name, NewBuffer(src), cfg)
}

// ParseReader parses the stream r.
func ParseReader(name string, r io.Reader, cfg *Config) (*Program, error) {
	return parseBuffer(name, NewStreamBuffer(r), cfg)
}

func parseBuffer(name string, b *Buffer, cfg *Config) (*Program, error) {
	p, err := NewParser(name, b, cfg)
	if err != nil {
		return nil, err
	}

	return p.Parse()
}

// Parse parses the source. The returned program is usable only when the
// error is nil, otherwise the error is an ErrorList of all diagnostics or
// the I/O error that stopped the scanner.
func (p *Parser) Parse() (prog *Program, err error) {
	defer func() {
		if e := recover(); e != nil {
			fe, ok := e.(*fatalError)
			if !ok {
				panic(e)
			}

			prog = nil
			err = fe.err
		}
	}()

	p.la = &Token{}
	p.get()
	prog = p.pascal()
	p.expect(EOF)
	return prog, p.errs.Err()
}

// HadErrors reports whether any diagnostic was reported.
func (p *Parser) HadErrors() bool { return len(p.errs) != 0 }

// Errors returns the diagnostics reported so far.
func (p *Parser) Errors() ErrorList { return p.errs }

// Tokens returns the number of tokens consumed so far.
func (p *Parser) Tokens() int { return p.tokens }

// File returns the line table of the source, nil for streams.
func (p *Parser) File() *token.File { return p.scanner.File() }

func (p *Parser) get() {
	p.t = p.la
	p.la = p.scanner.Next()
	if err := p.scanner.Err(); err != nil {
		panic(&fatalError{err})
	}

	if p.cfg.Trace {
		trc("%v", p.la)
	}
	p.tokens++
	p.errDist++
}

// peek returns the token after the lookahead.
func (p *Parser) peek() *Token {
	p.scanner.ResetPeek()
	return p.scanner.Peek()
}

func (p *Parser) report(pos token.Position, msg string) {
	d := &Diagnostic{Position: pos, Msg: msg}
	p.errs = append(p.errs, d)
	if w := p.cfg.ErrorWriter; w != nil {
		fmt.Fprintln(w, d.format())
	}
}

func (p *Parser) synErr(msg string) {
	if p.errDist >= p.minErrDist {
		p.report(p.la.Position, p.syntaxMessage(msg))
	}
	p.errDist = 0
}

// syntaxMessage replaces msg by a description of the lookahead when the
// scanner did not recognize it.
func (p *Parser) syntaxMessage(msg string) string {
	if p.la.Kind != ILLEGAL {
		return msg
	}

	switch v := p.la.Val; {
	case v == "{" || v == "(*":
		return "unterminated comment"
	case strings.HasPrefix(v, "'"):
		return "unterminated string"
	default:
		return fmt.Sprintf("illegal character %q", v)
	}
}

func (p *Parser) semErr(pos token.Position, msg string) {
	if p.errDist >= p.minErrDist {
		p.report(pos, msg)
	}
	p.errDist = 0
}

func (p *Parser) expect(k Kind) {
	if p.la.Kind == k {
		p.get()
		return
	}

	p.synErr(k.expected())
}

// expectWeak is expect followed by skipping to a token in follow.
func (p *Parser) expectWeak(k Kind, follow kindSet) {
	if p.la.Kind == k {
		p.get()
		return
	}

	p.synErr(k.expected())
	for !follow.has(p.la.Kind) && p.la.Kind != EOF {
		p.get()
	}
}

// weakSeparator consumes a separator k of a list. It returns whether the
// list continues: the separator was present or, after skipping, a token in
// syFol starts the next element. A token in repFol ends the list.
func (p *Parser) weakSeparator(k Kind, syFol, repFol kindSet) bool {
	switch {
	case p.la.Kind == k:
		p.get()
		return true
	case repFol.has(p.la.Kind):
		return false
	}

	p.synErr(k.expected())
	for !syFol.has(p.la.Kind) && !repFol.has(p.la.Kind) && p.la.Kind != EOF {
		p.get()
	}
	return syFol.has(p.la.Kind)
}

// ident returns the identifier token. A missing identifier yields a token
// with empty Val, which the factory ignores.
func (p *Parser) ident() *Token {
	if p.la.Kind == IDENT {
		p.get()
		return p.t
	}

	p.synErr(IDENT.expected())
	return &Token{Position: p.la.Position, Kind: IDENT, CharPos: p.la.CharPos}
}

// Pascal = Program | Unit .
func (p *Parser) pascal() *Program {
	switch p.la.Kind {
	case PROGRAM:
		return p.program()
	case UNIT:
		return p.unit()
	}

	p.synErr("invalid Pascal")
	return nil
}

// Program = "program" ident [ "(" IdentList ")" ] ";" [ Uses ] Declarations Block "." .
func (p *Parser) program() *Program {
	p.expect(PROGRAM)
	name := p.ident()
	p.f.startProgram(name)
	if p.la.Kind == LPAREN {
		p.get()
		p.identList()
		p.expect(RPAREN)
	}
	p.expectWeak(SEMI, declStart.union(newKindSet(USES)))
	if p.la.Kind == USES {
		p.uses()
	}
	p.declarations()
	body := p.block()
	p.expect(DOT)
	return &Program{Name: name.lower(), Root: p.f.finishProgram(name, body), Subroutines: p.f.reg}
}

// Unit = "unit" ident ";" "interface" [ Uses ] { InterfacePart }
//
//	"implementation" Declarations ( Block | "end" ) "." .
//
// InterfacePart = ConstSection | TypeSection | VarSection | Heading ";" .
func (p *Parser) unit() *Program {
	p.expect(UNIT)
	name := p.ident()
	p.f.startUnit(name)
	p.expectWeak(SEMI, newKindSet(INTERFACE))
	p.expect(INTERFACE)
	if p.la.Kind == USES {
		p.uses()
	}
loop:
	for {
		switch p.la.Kind {
		case CONST:
			p.constSection()
		case TYPE:
			p.typeSection()
		case VAR:
			p.varSection()
		case PROCEDURE, FUNCTION:
			sub := p.f.startSubroutine(p.heading())
			p.f.forward(p.t, sub)
			p.expectWeak(SEMI, declStart)
		default:
			break loop
		}
	}
	p.expect(IMPLEMENTATION)
	p.f.startImplementation()
	p.declarations()
	var body *Block
	switch p.la.Kind {
	case BEGIN:
		body = p.block()
	default:
		body = &Block{stmt: stmtAt(p.la.Position)}
		p.expect(END)
	}
	p.expect(DOT)
	root := p.f.finishUnit(name, body)
	u := p.f.unit
	if !p.HadErrors() {
		if err := p.f.units.Add(u); err != nil {
			p.report(name.Position, err.Error())
		}
	}
	return &Program{Name: name.lower(), Root: root, Subroutines: p.f.reg, Unit: u}
}

// Uses = "uses" ident { "," ident } ";" .
func (p *Parser) uses() {
	p.expect(USES)
	for {
		p.f.importUnit(p.ident())
		if p.la.Kind != COMMA {
			break
		}

		p.get()
	}
	p.expectWeak(SEMI, declStart)
}

// Declarations = { ConstSection | TypeSection | VarSection | Procedure | Function } .
func (p *Parser) declarations() {
	for {
		switch p.la.Kind {
		case CONST:
			p.constSection()
		case TYPE:
			p.typeSection()
		case VAR:
			p.varSection()
		case PROCEDURE, FUNCTION:
			p.subroutine()
		default:
			return
		}
	}
}

// Block = "begin" StatementSequence "end" .
func (p *Parser) block() *Block {
	pos := p.la.Position
	p.expect(BEGIN)
	b := p.statementSequence(pos)
	p.expect(END)
	return b
}

// IdentList = ident { "," ident } .
func (p *Parser) identList() (r []*Token) {
	for {
		if id := p.ident(); id.Val != "" {
			r = append(r, id)
		}
		if p.la.Kind != COMMA {
			return r
		}

		p.get()
	}
}

// ConstSection = "const" ConstDefinition ";" { ConstDefinition ";" } .
//
// ConstDefinition = ident "=" Constant .
func (p *Parser) constSection() {
	p.expect(CONST)
	for {
		id := p.ident()
		p.expect(EQ)
		p.constant(id)
		p.expectWeak(SEMI, declFollow)
		if p.la.Kind != IDENT {
			return
		}
	}
}

// Constant = [ "+" | "-" ] ( ident | Literal ) .
func (p *Parser) constant(id *Token) {
	sign := p.sign()
	if p.la.Kind == IDENT {
		p.get()
		var k Kind
		if sign != nil {
			k = sign.Kind
		}
		p.f.registerConstantFrom(id, p.t, k)
		return
	}

	p.f.registerConstant(id, p.f.signed(sign, p.literal()))
}

// ConstantValue = [ "+" | "-" ] ( ident | Literal ) .
func (p *Parser) constantValue() Constant {
	sign := p.sign()
	if p.la.Kind == IDENT {
		p.get()
		return p.f.constIdent(sign, p.t)
	}

	return p.f.signed(sign, p.literal())
}

func (p *Parser) sign() *Token {
	switch p.la.Kind {
	case PLUS, MINUS:
		p.get()
		return p.t
	}

	return nil
}

// Literal = INT | REAL | STRING | "true" | "false" .
func (p *Parser) literal() Constant {
	switch p.la.Kind {
	case INT:
		p.get()
		return p.f.intConst(p.t)
	case REAL:
		p.get()
		return p.f.realConst(p.t)
	case STRING:
		p.get()
		return ParseString(p.t.Val)
	case TRUE:
		p.get()
		return BooleanConstant(true)
	case FALSE:
		p.get()
		return BooleanConstant(false)
	}

	p.synErr("invalid Constant")
	return nil
}

// TypeSection = "type" TypeDefinition ";" { TypeDefinition ";" } .
//
// TypeDefinition = ident "=" Type .
func (p *Parser) typeSection() {
	p.expect(TYPE)
	for {
		id := p.ident()
		p.expect(EQ)
		p.f.registerType(id, p.typ())
		p.expectWeak(SEMI, declFollow)
		if p.la.Kind != IDENT {
			break
		}
	}
	p.f.resolvePointers()
}

// VarSection = "var" VarDeclaration ";" { VarDeclaration ";" } .
//
// VarDeclaration = IdentList ":" Type .
func (p *Parser) varSection() {
	p.expect(VAR)
	for {
		ids := p.identList()
		p.expect(COLON)
		p.f.registerVariables(ids, p.typ())
		p.expectWeak(SEMI, declFollow)
		if p.la.Kind != IDENT {
			break
		}
	}
	p.f.resolvePointers()
}

// Type = ident | Subrange | Enum | [ "packed" ] ( ArrayType | RecordType | SetType ) | "^" ident .
func (p *Parser) typ() Type {
	switch p.la.Kind {
	case IDENT:
		if p.peek().Kind == DD {
			return p.subrange()
		}

		p.get()
		return p.f.typeNamed(p.t)
	case INT, PLUS, MINUS, STRING:
		return p.subrange()
	case LPAREN:
		return p.enum()
	case PACKED:
		p.get()
		switch p.la.Kind {
		case ARRAY, RECORD, SET:
			return p.typ()
		}
	case ARRAY:
		return p.arrayType()
	case RECORD:
		return p.recordType()
	case SET:
		return p.setType()
	case CARET:
		p.get()
		return p.f.pointer(p.ident())
	}

	p.synErr("invalid Type")
	return Unknown
}

// Subrange = ConstantValue ".." ConstantValue .
func (p *Parser) subrange() Type {
	tok := p.la
	lo := p.constantValue()
	p.expect(DD)
	hi := p.constantValue()
	return p.f.subrange(tok, lo, hi)
}

// Enum = "(" IdentList ")" .
func (p *Parser) enum() Type {
	p.expect(LPAREN)
	ids := p.identList()
	p.expect(RPAREN)
	return p.f.enum(ids)
}

// ArrayType = Dimensions { "of" [ "packed" ] Dimensions } "of" Type .
func (p *Parser) arrayType() Type {
	dims := p.dimensions(nil)
	for p.continuesArray() {
		p.expect(OF)
		if p.la.Kind == PACKED {
			p.get()
		}
		dims = p.dimensions(dims)
	}
	p.expect(OF)
	return p.f.array(dims, p.typ())
}

// Dimensions = "array" "[" Ordinal { "," Ordinal } "]" .
func (p *Parser) dimensions(dims []Type) []Type {
	p.expect(ARRAY)
	p.expect(LBRACK)
	for {
		dims = append(dims, p.ordinal())
		if p.la.Kind != COMMA {
			break
		}

		p.get()
	}
	p.expect(RBRACK)
	return dims
}

// continuesArray reports whether "of" introduces another array dimension
// list rather than the element type.
func (p *Parser) continuesArray() bool {
	if p.la.Kind != OF {
		return false
	}

	switch p.peek().Kind {
	case ARRAY:
		return true
	case PACKED:
		p.scanner.SkipPeek()
		return p.scanner.Peek().Kind == ARRAY
	}
	return false
}

// Ordinal = Subrange | Type .
func (p *Parser) ordinal() Type {
	tok := p.la
	switch p.la.Kind {
	case INT, PLUS, MINUS, STRING:
		return p.subrange()
	}

	return p.f.ordinal(tok, p.typ())
}

// RecordType = "record" [ FieldList ] "end" .
//
// FieldList = IdentList ":" Type { ";" IdentList ":" Type } [ ";" ] .
func (p *Parser) recordType() Type {
	p.expect(RECORD)
	p.f.startRecord()
	for p.la.Kind == IDENT {
		ids := p.identList()
		p.expect(COLON)
		p.f.registerVariables(ids, p.typ())
		if p.la.Kind != SEMI {
			break
		}

		p.get()
	}
	t := p.f.finishRecord()
	p.expect(END)
	return t
}

// SetType = "set" "of" Ordinal .
func (p *Parser) setType() Type {
	tok := p.la
	p.expect(SET)
	p.expect(OF)
	return p.f.set(tok, p.ordinal())
}

// Subroutine = Heading ";" ( "forward" ";" | Declarations Block ";" ) .
func (p *Parser) subroutine() {
	sub := p.f.startSubroutine(p.heading())
	p.expectWeak(SEMI, declStart.union(newKindSet(FORWARD)))
	if p.la.Kind == FORWARD {
		p.get()
		p.f.forward(p.t, sub)
		p.expectWeak(SEMI, declStart)
		return
	}

	p.declarations()
	body := p.block()
	p.f.finishSubroutine(sub, body)
	p.expectWeak(SEMI, declStart)
}

// Heading = "procedure" ident [ FormalParameters ]
//
//	| "function" ident [ FormalParameters ] [ ":" ident ] .
func (p *Parser) heading() *heading {
	h := &heading{fn: p.la.Kind == FUNCTION}
	p.get()
	h.id = p.ident()
	if p.la.Kind == LPAREN {
		h.params = p.formalParameters()
	}
	if h.fn && p.la.Kind == COLON {
		p.get()
		h.result = p.f.typeNamed(p.ident())
	}
	return h
}

// FormalParameters = "(" FormalSection { ";" FormalSection } ")" .
//
// FormalSection = [ "var" ] IdentList ":" ident .
func (p *Parser) formalParameters() (r []*FormalParameter) {
	p.expect(LPAREN)
	for {
		byRef := false
		if p.la.Kind == VAR {
			p.get()
			byRef = true
		}
		ids := p.identList()
		p.expect(COLON)
		t := p.f.typeNamed(p.ident())
		for _, id := range ids {
			r = append(r, &FormalParameter{Name: id.lower(), Type: t, ByRef: byRef})
		}
		if p.la.Kind != SEMI {
			break
		}

		p.get()
	}
	p.expect(RPAREN)
	return r
}

// StatementSequence = Statement { ";" Statement } .
func (p *Parser) statementSequence(pos token.Position) *Block {
	b := &Block{stmt: stmtAt(pos)}
	for {
		if s := p.statement(); s != nil {
			if _, ok := s.(*Nop); !ok {
				b.List = append(b.List, s)
			}
		}
		if !p.weakSeparator(SEMI, statementSync, statementEnd) {
			return b
		}
	}
}

// Statement = [ IdentStatement | Block | If | For | While | Repeat | Case | "randomize" | "break" ] .
func (p *Parser) statement() Stmt {
	switch p.la.Kind {
	case IDENT:
		return p.identStatement()
	case BEGIN:
		return p.block()
	case IF:
		return p.ifStatement()
	case FOR:
		return p.forStatement()
	case WHILE:
		return p.whileStatement()
	case REPEAT:
		return p.repeatStatement()
	case CASE:
		return p.caseStatement()
	case RANDOMIZE:
		p.get()
		return &RandomizeStmt{stmtAt(p.t.Position)}
	case BREAK:
		p.get()
		return p.f.breakStmt(p.t)
	}

	if !emptyStatement.has(p.la.Kind) {
		p.synErr("invalid Statement")
	}
	return &Nop{stmtAt(p.la.Position)}
}

// IdentStatement = ident ( Arguments | Selectors ":=" Expression | ) .
func (p *Parser) identStatement() Stmt {
	p.get()
	id := p.t
	switch p.la.Kind {
	case LPAREN:
		sub := p.f.subroutine(id)
		return p.f.callStmt(id, sub, p.arguments(sub))
	case ASSIGN, LBRACK, DOT, CARET:
		target := p.selectors(p.f.target(id))
		tok := p.la
		p.expect(ASSIGN)
		return p.f.assign(id, tok, target, p.expression())
	}

	if emptyStatement.has(p.la.Kind) {
		return p.f.callStmt(id, p.f.subroutine(id), nil)
	}

	p.synErr("invalid Statement")
	return &Nop{stmtAt(id.Position)}
}

// Arguments = "(" [ Expression { "," Expression } ] ")" .
func (p *Parser) arguments(sub *Subroutine) (r []Expr) {
	p.expect(LPAREN)
	if p.la.Kind != RPAREN {
		for {
			e := p.expression()
			if sub != nil && sub.ShouldBeReference(len(r)) {
				e = p.f.refArg(e)
			}
			r = append(r, e)
			if p.la.Kind != COMMA {
				break
			}

			p.get()
		}
	}
	p.expect(RPAREN)
	return r
}

// Selectors = { "[" Expression { "," Expression } "]" | "." ident | "^" } .
func (p *Parser) selectors(x Expr) Expr {
	for {
		switch p.la.Kind {
		case LBRACK:
			p.get()
			tok := p.t
			for {
				x = p.f.index(tok, x, p.expression())
				if p.la.Kind != COMMA {
					break
				}

				p.get()
			}
			p.expect(RBRACK)
		case DOT:
			p.get()
			x = p.f.field(p.ident(), x)
		case CARET:
			p.get()
			x = p.f.deref(p.t, x)
		default:
			return x
		}
	}
}

// If = "if" Expression "then" Statement [ "else" Statement ] .
func (p *Parser) ifStatement() Stmt {
	p.expect(IF)
	tok := p.t
	cond := p.f.condition(tok, p.expression())
	p.expect(THEN)
	n := &IfStmt{stmt: stmtAt(tok.Position), Cond: cond, Then: p.statement()}
	if p.la.Kind == ELSE {
		p.get()
		n.Else = p.statement()
	}
	return n
}

// For = "for" ident ":=" Expression ( "to" | "downto" ) Expression "do" Statement .
func (p *Parser) forStatement() Stmt {
	p.expect(FOR)
	tok := p.t
	v := p.f.forVar(p.ident())
	p.expect(ASSIGN)
	from := p.expression()
	down := false
	switch p.la.Kind {
	case TO:
		p.get()
	case DOWNTO:
		p.get()
		down = true
	default:
		p.synErr("invalid For")
	}
	to := p.expression()
	p.expect(DO)
	body := p.loopBody(p.statement)
	return p.f.forStmt(tok, v, from, to, down, body)
}

// While = "while" Expression "do" Statement .
func (p *Parser) whileStatement() Stmt {
	p.expect(WHILE)
	tok := p.t
	cond := p.f.condition(tok, p.expression())
	p.expect(DO)
	return &WhileStmt{stmt: stmtAt(tok.Position), Cond: cond, Body: p.loopBody(p.statement)}
}

// Repeat = "repeat" StatementSequence "until" Expression .
func (p *Parser) repeatStatement() Stmt {
	p.expect(REPEAT)
	tok := p.t
	body := p.loopBody(func() Stmt { return p.statementSequence(tok.Position) })
	p.expect(UNTIL)
	until := p.t
	return &RepeatStmt{stmt: stmtAt(tok.Position), Body: body.(*Block), Cond: p.f.condition(until, p.expression())}
}

func (p *Parser) loopBody(f func() Stmt) Stmt {
	p.f.scopes.EnterLoop()
	defer p.f.scopes.LeaveLoop()
	return f()
}

// Case = "case" Expression "of" [ CaseClause { ";" CaseClause } ] [ ";" ]
//
//	[ "else" StatementSequence ] "end" .
func (p *Parser) caseStatement() Stmt {
	p.expect(CASE)
	tok := p.t
	x := p.f.caseSelector(tok, p.expression())
	p.expect(OF)
	var clauses []*CaseClause
	if p.la.Kind != END && p.la.Kind != ELSE {
		clauses = append(clauses, p.caseClause(x))
		for p.la.Kind == SEMI && !p.caseEnds() {
			p.get()
			clauses = append(clauses, p.caseClause(x))
		}
	}
	if p.la.Kind == SEMI {
		p.get()
	}
	var els Stmt
	if p.la.Kind == ELSE {
		p.get()
		els = p.statementSequence(p.t.Position)
	}
	p.expect(END)
	return p.f.caseStmt(tok, x, clauses, els)
}

// caseEnds reports whether the case clauses are complete: the lookahead is
// "end" or "else", possibly preceded by a ";".
func (p *Parser) caseEnds() bool {
	switch p.la.Kind {
	case END, ELSE, EOF:
		return true
	case SEMI:
		switch p.peek().Kind {
		case END, ELSE:
			return true
		}
	}
	return false
}

// CaseClause = Expression { "," Expression } ":" Statement .
func (p *Parser) caseClause(sel Expr) *CaseClause {
	c := &CaseClause{}
	for {
		if v := p.f.caseLabel(p.expression(), sel); v != nil {
			c.Labels = append(c.Labels, v)
		}
		if p.la.Kind != COMMA {
			break
		}

		p.get()
	}
	p.expect(COLON)
	c.Body = p.statement()
	return c
}

// Expression = LogicTerm { "or" LogicTerm } .
func (p *Parser) expression() Expr {
	x := p.logicTerm()
	for p.la.Kind == OR {
		p.get()
		op := p.t
		x = p.f.binary(op, x, p.logicTerm())
	}
	return x
}

// LogicTerm = SignedLogicFactor { "and" SignedLogicFactor } .
func (p *Parser) logicTerm() Expr {
	x := p.signedLogicFactor()
	for p.la.Kind == AND {
		p.get()
		op := p.t
		x = p.f.binary(op, x, p.signedLogicFactor())
	}
	return x
}

// SignedLogicFactor = "not" SignedLogicFactor | LogicFactor .
func (p *Parser) signedLogicFactor() Expr {
	if p.la.Kind == NOT {
		p.get()
		op := p.t
		return p.f.unary(op, p.signedLogicFactor())
	}

	return p.logicFactor()
}

// LogicFactor = Arithmetic [ ( "=" | "<>" | "<" | "<=" | ">" | ">=" | "in" ) Arithmetic ] .
func (p *Parser) logicFactor() Expr {
	x := p.arithmetic()
	if relOps.has(p.la.Kind) {
		p.get()
		op := p.t
		x = p.f.binary(op, x, p.arithmetic())
	}
	return x
}

// Arithmetic = Term { ( "+" | "-" ) Term } .
func (p *Parser) arithmetic() Expr {
	x := p.term()
	for addOps.has(p.la.Kind) {
		p.get()
		op := p.t
		x = p.f.binary(op, x, p.term())
	}
	return x
}

// Term = SignedFactor { ( "*" | "/" | "div" | "mod" ) SignedFactor } .
func (p *Parser) term() Expr {
	x := p.signedFactor()
	for mulOps.has(p.la.Kind) {
		p.get()
		op := p.t
		x = p.f.binary(op, x, p.signedFactor())
	}
	return x
}

// SignedFactor = ( "+" | "-" ) SignedFactor | Factor .
func (p *Parser) signedFactor() Expr {
	if addOps.has(p.la.Kind) {
		p.get()
		op := p.t
		return p.f.unary(op, p.signedFactor())
	}

	return p.factor()
}

// Factor = ident ( Arguments | ) Selectors | "(" Expression ")" | Literal
//
//	| "random" [ "(" Expression ")" ] | SetConstructor .
func (p *Parser) factor() Expr {
	switch p.la.Kind {
	case IDENT:
		p.get()
		id := p.t
		if p.la.Kind == LPAREN {
			sub := p.f.subroutine(id)
			args := p.arguments(sub)
			return p.selectors(p.f.funcCall(id, sub, args))
		}

		return p.selectors(p.f.identExpr(id))
	case LPAREN:
		p.get()
		x := p.expression()
		p.expect(RPAREN)
		return x
	case INT, REAL, STRING, TRUE, FALSE:
		tok := p.la
		return p.f.literal(tok, p.literal())
	case RANDOM:
		p.get()
		tok := p.t
		var max Expr
		if p.la.Kind == LPAREN {
			p.get()
			max = p.expression()
			p.expect(RPAREN)
		}
		return p.f.random(tok, max)
	case LBRACK:
		return p.setConstructor()
	}

	p.synErr("invalid Factor")
	return &BadExpr{node: at(p.la.Position)}
}

// SetConstructor = "[" [ SetElement { "," SetElement } ] "]" .
//
// SetElement = Expression [ ".." Expression ] .
func (p *Parser) setConstructor() Expr {
	p.expect(LBRACK)
	tok := p.t
	var elems []Expr
	if p.la.Kind != RBRACK {
		for {
			x := p.expression()
			if p.la.Kind == DD {
				p.get()
				x = p.f.rangeExpr(p.t, x, p.expression())
			}
			elems = append(elems, x)
			if p.la.Kind != COMMA {
				break
			}

			p.get()
		}
	}
	p.expect(RBRACK)
	return p.f.setExpr(tok, elems)
}
