package compiler

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/pebblescript/pebble/lang/lexer"
	"github.com/pebblescript/pebble/lang/token"
	"github.com/pebblescript/pebble/lang/value"
)

// Program is the output of compilation: an interned constant pool and a
// flat opcode array, per spec §3's "Bytecode array" data model.
type Program struct {
	Constants []value.Value
	Code      []int
}

// Error is a compile-time error together with the source position where it
// was detected.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// Compiler turns a token stream into a Program in a single pass, patching
// forward jumps for if/while and lifting nested function bodies into their
// own code arrays (spec §4.4).
type Compiler struct {
	lex       *lexer.Lexer
	constants []value.Value
	code      []int
	funcDepth int
	err       error
}

// New returns a Compiler for src.
func New(src string) *Compiler {
	return &Compiler{lex: lexer.New(src)}
}

// Compile runs the compiler to completion, returning the resulting Program
// or an error: the first syntactic error if there is one, otherwise the
// first lexical error the lexer recorded.
func (c *Compiler) Compile() (*Program, error) {
	for {
		tok := c.lex.Next()
		if tok.Kind == token.EOF {
			break
		}
		c.compileSexpr(tok)
		if c.err != nil {
			return nil, c.err
		}
	}
	if errs := c.lex.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	c.code = append(c.code, int(RETURN))
	return &Program{Constants: c.constants, Code: c.code}, nil
}

func (c *Compiler) fail(pos token.Position, format string, args ...any) {
	if c.err == nil {
		c.err = &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
	}
}

func (c *Compiler) emit(op Opcode, operands ...int) {
	c.code = append(c.code, int(op))
	c.code = append(c.code, operands...)
}

// emitJump emits op with a placeholder operand and returns the index of
// that operand slot, to be patched later with patchJump.
func (c *Compiler) emitJump(op Opcode) int {
	c.emit(op, 0)
	return len(c.code) - 1
}

// patchJump sets the jump at operandIdx to land exactly at the current end
// of the code array.
func (c *Compiler) patchJump(operandIdx int) {
	resumeAt := operandIdx + 1
	c.code[operandIdx] = len(c.code) - resumeAt
}

// defineConstant interns v by (variant, scalar) for Number and String
// values — spec's resolved open question on constant interning — and
// otherwise appends a fresh entry. Function constants never pass through
// here: compileFun appends them directly, so they are never interned.
func (c *Compiler) defineConstant(v value.Value) int {
	switch vv := v.(type) {
	case value.Number:
		if i := slices.IndexFunc(c.constants, func(cst value.Value) bool {
			n, ok := cst.(value.Number)
			return ok && n == vv
		}); i >= 0 {
			return i
		}
	case value.String:
		if i := slices.IndexFunc(c.constants, func(cst value.Value) bool {
			s, ok := cst.(value.String)
			return ok && s == vv
		}); i >= 0 {
			return i
		}
	}
	c.constants = append(c.constants, v)
	return len(c.constants) - 1
}

func (c *Compiler) nameConstant(name string) int {
	return c.defineConstant(value.String(name))
}

// expect consumes the next token and requires it to have kind k.
func (c *Compiler) expect(k token.Kind) token.Token {
	tok := c.lex.Next()
	if c.err == nil && tok.Kind != k {
		c.fail(tok.Pos, "expected %s, got %s", k, tok.Kind)
	}
	return tok
}

// compileOperand reads and compiles a single nested expression (atom or
// parenthesized form).
func (c *Compiler) compileOperand() {
	if c.err != nil {
		return
	}
	tok := c.lex.Next()
	c.compileSexpr(tok)
}

// compileSexpr compiles the s-expression starting at tok, per spec §4.4's
// "S-expression grammar" dispatch table.
func (c *Compiler) compileSexpr(tok token.Token) {
	if c.err != nil {
		return
	}
	switch tok.Kind {
	case token.LPAREN:
		c.compileParen()
	case token.IDENT:
		c.emit(GET_VARIABLE, c.nameConstant(tok.Lexeme))
	case token.NUMBER:
		c.emit(GET_CONST, c.defineConstant(value.Number(tok.Num)))
	case token.STRING:
		c.emit(GET_CONST, c.defineConstant(value.String(tok.Str)))
	case token.TRUE:
		c.emit(TRUE)
	case token.FALSE:
		c.emit(FALSE)
	case token.UNDEFINED:
		c.emit(UNDEFINED)
	default:
		c.fail(tok.Pos, "unexpected token %s", tok.Kind)
	}
}

var binaryOpcode = map[token.Kind]Opcode{
	token.PLUS:       ADD,
	token.MINUS:      SUB,
	token.STAR:       MUL,
	token.SLASH:      DIV,
	token.SLASHSLASH: FLOOR_DIV,
	token.PERCENT:    MOD,
	token.DOT:        DOT,
	token.EQL:        EQUAL,
	token.NEQ:        NOT_EQUAL,
	token.LT:         LESS,
	token.LE:         LESS_EQUAL,
	token.GT:         GREATER,
	token.GE:         GREATER_EQUAL,
	token.IS:         IS,
	token.AND:        AND,
	token.OR:         OR,
}

var compoundOpcode = map[token.Kind]Opcode{
	token.PLUS_EQ:       ADD,
	token.MINUS_EQ:      SUB,
	token.STAR_EQ:       MUL,
	token.SLASH_EQ:      DIV,
	token.SLASHSLASH_EQ: FLOOR_DIV,
	token.PERCENT_EQ:    MOD,
}

// compileParen compiles a parenthesized expression; the opening '(' has
// already been consumed by the caller.
func (c *Compiler) compileParen() {
	head := c.lex.Next()
	if c.err != nil {
		return
	}

	if head.Kind == token.MINUS {
		// could be unary negate `(- A)` or binary subtract `(- A B)`
		c.compileOperand()
		if c.err != nil {
			return
		}
		if c.lex.Peek().Kind == token.RPAREN {
			c.lex.Next()
			c.emit(NEGATE)
			return
		}
		c.compileOperand()
		c.expect(token.RPAREN)
		c.emit(SUB)
		return
	}

	if op, ok := binaryOpcode[head.Kind]; ok {
		c.compileOperand()
		c.compileOperand()
		c.expect(token.RPAREN)
		c.emit(op)
		return
	}

	if _, ok := compoundOpcode[head.Kind]; ok {
		c.compileCompoundAssign(head)
		return
	}

	switch head.Kind {
	case token.RPAREN:
		c.fail(head.Pos, "unbalanced parenthesis")
	case token.BANG:
		c.compileOperand()
		c.expect(token.RPAREN)
		c.emit(NOT)
	case token.EQ:
		c.compileAssign(head)
	case token.LET:
		c.compileLet(head)
	case token.IF:
		c.compileIf(head)
	case token.WHILE:
		c.compileWhile(head)
	case token.FUN:
		c.compileFun(head)
	case token.IMPORT:
		c.compileImport(head)
	case token.RETURN:
		c.compileReturn(head)
	case token.IDENT:
		c.compileCall(head)
	default:
		c.fail(head.Pos, "unexpected token %s in expression", head.Kind)
	}
}

func (c *Compiler) compileCompoundAssign(head token.Token) {
	op, ok := compoundOpcode[head.Kind]
	if !ok {
		c.fail(head.Pos, "unexpected token %s", head.Kind)
		return
	}
	varTok := c.expect(token.IDENT)
	if c.err != nil {
		return
	}
	nameIdx := c.nameConstant(varTok.Lexeme)
	c.emit(GET_VARIABLE, nameIdx)
	c.compileOperand()
	c.expect(token.RPAREN)
	c.emit(op)
	c.emit(SET_VARIABLE, nameIdx)
}

func (c *Compiler) compileAssign(head token.Token) {
	varTok := c.expect(token.IDENT)
	if c.err != nil {
		return
	}
	nameIdx := c.nameConstant(varTok.Lexeme)
	c.compileOperand()
	c.expect(token.RPAREN)
	c.emit(SET_VARIABLE, nameIdx)
}

func (c *Compiler) compileLet(head token.Token) {
	nameTok := c.expect(token.IDENT)
	if c.err != nil {
		return
	}
	nameIdx := c.nameConstant(nameTok.Lexeme)
	c.compileOperand()
	c.expect(token.RPAREN)
	c.emit(DEF_VARIABLE, nameIdx)
}

// compileIf implements spec §4.4's if rule: compile COND; emit
// JUMP_IF_FALSE and remember its patch slot; parse the true block; if
// another '(' follows, it is the else block — patch the false-jump to land
// there, emit an unconditional JUMP over the else block with its own patch
// slot, parse the else block, then patch that jump to land after it.
// Otherwise the false-jump lands right after the true block.
func (c *Compiler) compileIf(head token.Token) {
	c.compileOperand() // COND
	if c.err != nil {
		return
	}
	falseJump := c.emitJump(JUMP_IF_FALSE)
	c.compileBlock() // TRUE_BLOCK
	if c.err != nil {
		return
	}

	if c.lex.Peek().Kind == token.LPAREN {
		endJump := c.emitJump(JUMP)
		c.patchJump(falseJump) // false branch lands right after endJump, at the else block
		c.compileBlock()       // ELSE_BLOCK
		c.patchJump(endJump)
	} else {
		c.patchJump(falseJump)
	}
	c.expect(token.RPAREN)
}

// compileWhile implements spec §4.4's while rule.
func (c *Compiler) compileWhile(head token.Token) {
	condStart := len(c.code)
	c.compileOperand() // COND
	if c.err != nil {
		return
	}
	falseJump := c.emitJump(JUMP_IF_FALSE)
	c.compileBlock() // BODY_BLOCK
	if c.err != nil {
		return
	}
	backJumpResumeAt := len(c.code) + 2 // +1 for the JUMP opcode, +1 for its operand
	c.emit(JUMP, condStart-backJumpResumeAt)
	c.patchJump(falseJump)
	c.expect(token.RPAREN)
}

// compileFun implements spec §4.4's fun rule: lift the body into its own
// code array, reverse the parameter list so CALL pops arguments into the
// right names, and define the resulting Function as a constant.
func (c *Compiler) compileFun(head token.Token) {
	c.funcDepth++
	defer func() { c.funcDepth-- }()

	nameTok := c.expect(token.IDENT)
	if c.err != nil {
		return
	}
	c.expect(token.LPAREN)
	var params []string
	for c.err == nil {
		if c.lex.Peek().Kind == token.RPAREN {
			c.lex.Next()
			break
		}
		p := c.expect(token.IDENT)
		if c.err != nil {
			return
		}
		params = append(params, p.Lexeme)
	}
	if c.err != nil {
		return
	}

	savedCode := c.code
	c.code = nil
	c.compileBlock() // BODY_BLOCK
	if c.err != nil {
		c.code = savedCode
		return
	}
	// a body that falls through without an explicit return, returns
	// undefined.
	c.emit(UNDEFINED)
	c.emit(RETURN)
	body := c.code
	c.code = savedCode

	reversed := make([]string, len(params))
	for i, p := range params {
		reversed[len(params)-1-i] = p
	}

	fn := &value.Function{Name: nameTok.Lexeme, Params: reversed, Code: body}
	c.constants = append(c.constants, fn)
	fnIdx := len(c.constants) - 1

	c.emit(GET_CONST, fnIdx)
	c.emit(DEF_VARIABLE, c.nameConstant(nameTok.Lexeme))
	c.expect(token.RPAREN)
}

func (c *Compiler) compileImport(head token.Token) {
	nameTok := c.expect(token.IDENT)
	if c.err != nil {
		return
	}
	c.emit(IMPORT, c.nameConstant(nameTok.Lexeme))
	c.expect(token.RPAREN)
}

func (c *Compiler) compileReturn(head token.Token) {
	if c.funcDepth == 0 {
		c.fail(head.Pos, "return outside of a function")
		return
	}
	if c.lex.Peek().Kind == token.RPAREN {
		c.lex.Next()
		c.emit(UNDEFINED)
		c.emit(RETURN)
		return
	}
	c.compileOperand()
	c.expect(token.RPAREN)
	c.emit(RETURN)
}

func (c *Compiler) compileCall(head token.Token) {
	nameIdx := c.nameConstant(head.Lexeme)
	argc := 0
	for c.err == nil {
		if c.lex.Peek().Kind == token.RPAREN {
			c.lex.Next()
			break
		}
		c.compileOperand()
		argc++
	}
	c.emit(CALL, argc, nameIdx)
}

// compileBlock compiles a sequence of s-expressions enclosed in parens, per
// spec §4.4's block definition. The opening '(' is consumed here.
func (c *Compiler) compileBlock() {
	c.expect(token.LPAREN)
	for c.err == nil {
		tok := c.lex.Next()
		if tok.Kind == token.RPAREN {
			return
		}
		if tok.Kind == token.EOF {
			c.fail(tok.Pos, "unterminated block")
			return
		}
		c.compileSexpr(tok)
	}
}
