// Package compiler implements the single-pass Pratt compiler spec.md
// §4.2 describes: it drives the lexer one token of lookahead at a
// time and emits bytecode directly into a Chunk, with no intermediate
// AST.
package compiler

import (
	"strconv"

	"ember/interner"
	"ember/lexer"
	"ember/token"
	"ember/value"
)

// precedence orders the grammar's operators from loosest- to
// tightest-binding, per spec.md §4.2's ladder. AND/OR keep a slot in
// the ladder even though this language surface has no logical
// operators bound to it yet — the gap documents where they'd sit.
type precedence int

const (
	precNone precedence = iota
	precAssignment
	precTernary
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precPostfix
	precCall
	precPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LEFT_PAREN:    {prefix: (*Compiler).grouping},
		token.MINUS:         {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		token.PLUS:          {infix: (*Compiler).binary, precedence: precTerm},
		token.SLASH:         {infix: (*Compiler).binary, precedence: precFactor},
		token.STAR:          {infix: (*Compiler).binary, precedence: precFactor},
		token.EQUAL_EQUAL:   {infix: (*Compiler).binary, precedence: precEquality},
		token.BANG_EQUAL:    {infix: (*Compiler).binary, precedence: precEquality},
		token.LESS:          {infix: (*Compiler).binary, precedence: precComparison},
		token.LESS_EQUAL:    {infix: (*Compiler).binary, precedence: precComparison},
		token.GREATER:       {infix: (*Compiler).binary, precedence: precComparison},
		token.GREATER_EQUAL: {infix: (*Compiler).binary, precedence: precComparison},
		token.QUESTION:      {infix: (*Compiler).ternary, precedence: precTernary},
		token.NOT:           {prefix: (*Compiler).unary},
		token.NIL:           {prefix: (*Compiler).literal},
		token.TRUE:          {prefix: (*Compiler).literal},
		token.FALSE:         {prefix: (*Compiler).literal},
		token.NUMBER:        {prefix: (*Compiler).number},
		token.STRING:        {prefix: (*Compiler).string},
		token.IDENTIFIER:    {prefix: (*Compiler).variable},
	}
}

func getRule(kind token.Kind) parseRule {
	return rules[kind]
}

// Compiler drives one compile of one source string into one Chunk.
// It is not reused across compiles (a REPL constructs a fresh one per
// line), but it shares the interner with whatever else — the VM, an
// earlier compile — is using the same process, per spec.md §5.
type Compiler struct {
	lexer   *lexer.Lexer
	strings *interner.Strings
	chunk   *Chunk

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errors    []CompileError
}

// Compile drives the lexer to completion, emitting bytecode into a
// fresh Chunk as it goes.
//
// Parameters:
//   - source: string
//     The full program text to compile.
//   - strings: *interner.Strings
//     The string interner to use for every string literal and
//     identifier constant. Callers running the resulting Chunk must
//     construct their VM with this same interner, since global names
//     and string values are compared by pointer identity.
//
// Returns:
//   - *Chunk: the compiled bytecode. Only meaningful when the errors
//     slice below is nil — a Chunk from a failed compile should be
//     discarded, not run.
//   - []CompileError: nil on success, or every compile error found
//     otherwise. Panic-mode recovery lets more than one surface per
//     compile, per spec.md §2/§7.
func Compile(source string, strings *interner.Strings) (*Chunk, []CompileError) {
	c := &Compiler{
		lexer:   lexer.New(source),
		strings: strings,
		chunk:   NewChunk(),
	}

	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.EOF, "Expect end of expression.")
	c.emitReturn()

	if c.hadError {
		return c.chunk, c.errors
	}
	return c.chunk, nil
}

// --- token-stream plumbing ---

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lexer.NextToken()
		if c.current.Kind != token.ERROR {
			return
		}
		c.errorAtCurrent(c.current.Message)
	}
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- error reporting & recovery ---

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	at := tok.Lexeme
	switch tok.Kind {
	case token.EOF:
		at = "end"
	case token.ERROR:
		at = ""
	}
	c.errors = append(c.errors, CompileError{Line: tok.Line, At: at, Message: message})
}

func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

// synchronize discards tokens until it reaches a likely statement
// boundary: right after a ';', or right before a keyword that can
// start a new statement. This keeps one syntax error from cascading
// into a wall of spurious follow-on errors, per spec.md §7.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// --- emission ---

func (c *Compiler) emitByte(b byte) {
	c.chunk.Write(b, c.previous.Line)
}

func (c *Compiler) emit(ops ...Opcode) {
	for _, op := range ops {
		c.emitByte(byte(op))
	}
}

func (c *Compiler) emitReturn() {
	c.emit(OpReturn)
}

func (c *Compiler) makeConstant(v value.Value) byte {
	idx, err := c.chunk.AddConstant(v)
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return byte(idx)
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitByte(byte(OpConstant))
	c.emitByte(c.makeConstant(v))
}

// identifierConstant interns name's lexeme and adds it to the
// constant pool, returning the constant's index. Using the same
// string-interning path as string literals means a variable named `a`
// and the literal `"a"` share one object, matching spec.md §4.2's
// "a string" wording for OP_DEFINE_GLOBAL's operand.
func (c *Compiler) identifierConstant(name token.Token) byte {
	obj := c.strings.Intern(name.Lexeme)
	return c.makeConstant(value.Object(obj))
}

// --- declarations & statements ---

func (c *Compiler) declaration() {
	if c.match(token.VAR) {
		c.varDeclaration()
	} else {
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	c.consume(token.IDENTIFIER, "Expect variable name.")
	name := c.identifierConstant(c.previous)

	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emit(OpNil)
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	c.emitByte(byte(OpDefineGlobal))
	c.emitByte(name)
}

func (c *Compiler) statement() {
	if c.match(token.PRINT) {
		c.printStatement()
		return
	}
	c.expressionStatement()
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emit(OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emit(OpPop)
}

// --- expressions ---

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	rule := getRule(c.previous.Kind)
	if rule.prefix == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	rule.prefix(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		if infix == nil {
			c.error("Invalid syntax.")
			return
		}
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(precUnary)

	switch opKind {
	case token.MINUS:
		c.emit(OpNegate)
	case token.NOT:
		c.emit(OpNot)
	}
}

func (c *Compiler) binary(_ bool) {
	opKind := c.previous.Kind
	rule := getRule(opKind)
	c.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.PLUS:
		c.emit(OpAdd)
	case token.MINUS:
		c.emit(OpSubtract)
	case token.STAR:
		c.emit(OpMultiply)
	case token.SLASH:
		c.emit(OpDivide)
	case token.EQUAL_EQUAL:
		c.emit(OpEqual)
	case token.BANG_EQUAL:
		c.emit(OpEqual, OpNot)
	case token.LESS:
		c.emit(OpLess)
	case token.LESS_EQUAL:
		// a <= b desugars to !(a > b), which makes NaN compare as
		// "less-or-equal" to everything — a known asymmetry spec.md
		// §4.2/§9 requires preserving, not fixing.
		c.emit(OpGreater, OpNot)
	case token.GREATER:
		c.emit(OpGreater)
	case token.GREATER_EQUAL:
		c.emit(OpLess, OpNot)
	}
}

// ternary handles `cond ? then : else`. spec.md §9 flags the original
// design (unconditionally evaluating both arms, with no branch
// opcodes) as plainly incomplete and asks an implementer to either
// reject it or add jump opcodes. Jump opcodes are an explicit
// non-goal here (spec.md §1), so ember rejects `?:` outright: it still
// parses and discards both arms so the token stream stays in sync for
// error recovery, but reports a compile error instead of silently
// keeping the broken both-arms-evaluated behavior.
func (c *Compiler) ternary(_ bool) {
	c.error("Ternary '?:' expressions are not supported.")
	c.parsePrecedence(precTernary)
	c.consume(token.COLON, "Expect ':' in ternary expression.")
	c.parsePrecedence(precTernary - 1)
}

func (c *Compiler) number(_ bool) {
	v, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(v))
}

func (c *Compiler) string(_ bool) {
	lexeme := c.previous.Lexeme
	chars := lexeme[1 : len(lexeme)-1] // strip the surrounding quotes
	obj := c.strings.Intern(chars)
	c.emitConstant(value.Object(obj))
}

func (c *Compiler) literal(_ bool) {
	switch c.previous.Kind {
	case token.NIL:
		c.emit(OpNil)
	case token.TRUE:
		c.emit(OpTrue)
	case token.FALSE:
		c.emit(OpFalse)
	}
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	idx := c.identifierConstant(name)

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emitByte(byte(OpSetGlobal))
		c.emitByte(idx)
		return
	}
	c.emitByte(byte(OpGetGlobal))
	c.emitByte(idx)
}
