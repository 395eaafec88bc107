// Package parser implements a recursive-descent / precedence-climbing
// parser for SRC source text, grounded on the teacher compiler's parser
// package shape (New(lexer), ParseProgram, Errors). Parse errors are
// collected rather than panicked on, and surface as SRC error kind 6
// ("Parse error").
package parser

import (
	"fmt"

	"github.com/creaturelang/critterc/internal/ast"
	"github.com/creaturelang/critterc/internal/lexer"
	"github.com/creaturelang/critterc/internal/token"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	lowest
	orPrec
	andPrec
	equality
	relational
	additive
	multiplicative
)

var binPrecedence = map[token.Type]int{
	token.OR:      orPrec,
	token.AND:     andPrec,
	token.EQ:      equality,
	token.NE:      equality,
	token.LT:      relational,
	token.LE:      relational,
	token.GT:      relational,
	token.GE:      relational,
	token.PLUS:    additive,
	token.MINUS:   additive,
	token.STAR:    multiplicative,
	token.SLASH:   multiplicative,
	token.PERCENT: multiplicative,
}

var binOperator = map[token.Type]ast.BinaryOperator{
	token.OR:      ast.OR,
	token.AND:     ast.AND,
	token.EQ:      ast.EQ,
	token.NE:      ast.NE,
	token.LT:      ast.LT,
	token.LE:      ast.LE,
	token.GT:      ast.GT,
	token.GE:      ast.GE,
	token.PLUS:    ast.PLUS,
	token.MINUS:   ast.MINUS,
	token.STAR:    ast.MUL,
	token.SLASH:   ast.DIV,
	token.PERCENT: ast.MOD,
}

// Parser consumes a token stream produced by lexer.Lexer and builds an
// ast.Program, or a list of parse errors.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []string
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the parse errors accumulated so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("Line %d: %s", p.cur.Pos.Line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(t token.Type) bool {
	if p.cur.Type != t {
		p.errorf("Parse error: expected %s, got %s", t.String(), p.cur.Type.String())
		return false
	}
	p.nextToken()
	return true
}

// ParseProgram parses a full SRC program: zero or more global declarations
// followed by one or more function declarations.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for p.cur.Type == token.VAR {
		if g := p.parseGlobalDecl(); g != nil {
			prog.Globals = append(prog.Globals, g)
		}
	}

	for p.cur.Type == token.FUN {
		if f := p.parseFunctionDecl(); f != nil {
			prog.Functions = append(prog.Functions, f)
		}
	}

	if p.cur.Type != token.EOF {
		p.errorf("Parse error: unexpected token %s", p.cur.Type.String())
	}

	return prog
}

func (p *Parser) parseGlobalDecl() *ast.GlobalVarDef {
	line := p.cur.Pos.Line
	p.nextToken() // consume 'var'

	if p.cur.Type != token.IDENT {
		p.errorf("Parse error: expected identifier after var")
		return nil
	}
	name := p.cur.Literal
	p.nextToken()

	if !p.expect(token.EQ) {
		return nil
	}

	neg := false
	if p.cur.Type == token.MINUS {
		neg = true
		p.nextToken()
	}
	if p.cur.Type != token.INT {
		p.errorf("Parse error: expected integer literal in global initializer")
		return nil
	}
	val := parseIntLiteral(p.cur.Literal)
	if neg {
		val = -val
	}
	p.nextToken()

	p.expect(token.SEMI)

	return &ast.GlobalVarDef{LineNo: line, Name: name, InitVal: val}
}

func (p *Parser) parseFunctionDecl() *ast.FunctionDef {
	line := p.cur.Pos.Line
	p.nextToken() // consume 'fun'

	if p.cur.Type != token.IDENT {
		p.errorf("Parse error: expected function name")
		return nil
	}
	name := p.cur.Literal
	p.nextToken()

	if !p.expect(token.LPAREN) {
		return nil
	}

	var params []ast.Param
	for p.cur.Type != token.RPAREN {
		if p.cur.Type != token.IDENT {
			p.errorf("Parse error: expected parameter name")
			return nil
		}
		pname := p.cur.Literal
		p.nextToken()
		if !p.expect(token.COLON) {
			return nil
		}
		ptype, ok := p.parseType()
		if !ok {
			return nil
		}
		params = append(params, ast.Param{Name: pname, Type: ptype})

		if p.cur.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.COLON) {
		return nil
	}
	retType, ok := p.parseType()
	if !ok {
		return nil
	}
	if !p.expect(token.EQ) {
		return nil
	}

	body := p.parseExpression(lowest)

	return &ast.FunctionDef{LineNo: line, Name: name, Params: params, Return: retType, Body: body}
}

func (p *Parser) parseType() (ast.StaticType, bool) {
	switch p.cur.Type {
	case token.INT_TYPE:
		p.nextToken()
		return ast.Int, true
	case token.BOOL_TYPE:
		p.nextToken()
		return ast.Bool, true
	case token.VOID_TYPE:
		p.nextToken()
		return ast.Void, true
	default:
		p.errorf("Parse error: expected a type name")
		return ast.Void, false
	}
}

// parseExpression parses the top-level expression forms (chain, if/else,
// assignment) and falls through to precedence-climbing binary parsing.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary(minPrec)
	if left == nil {
		return left
	}
	return p.parseBinaryRHS(minPrec, left)
}

func (p *Parser) parseBinaryRHS(minPrec int, left ast.Expression) ast.Expression {
	for {
		prec, ok := binPrecedence[p.cur.Type]
		if !ok || prec < minPrec {
			return left
		}
		op := binOperator[p.cur.Type]
		line := p.cur.Pos.Line
		p.nextToken()
		right := p.parseUnary(prec + 1)
		right = p.parseBinaryRHS(prec+1, right)
		left = &ast.Binary{LineNo: line, Op: op, E1: left, E2: right}
	}
}

// parseUnary handles "not e" (desugared to a branch-typed IfElse, since
// SRC's frozen Expression variant has no dedicated unary node) and falls
// through to control-flow/primary forms.
func (p *Parser) parseUnary(minPrec int) ast.Expression {
	if p.cur.Type == token.NOT {
		line := p.cur.Pos.Line
		p.nextToken()
		operand := p.parseUnary(multiplicative)
		return &ast.IfElse{
			LineNo: line,
			Cond:   operand,
			Then:   &ast.Literal{LineNo: line, Value: ast.BoolLit(false)},
			Else:   &ast.Literal{LineNo: line, Value: ast.BoolLit(true)},
		}
	}
	return p.parseControlOrPrimary()
}

func (p *Parser) parseControlOrPrimary() ast.Expression {
	switch p.cur.Type {
	case token.LBRACE:
		return p.parseChain()
	case token.IF:
		return p.parseIfElse()
	case token.IDENT:
		return p.parseIdentOrAssignOrCall()
	case token.INT:
		line := p.cur.Pos.Line
		v := parseIntLiteral(p.cur.Literal)
		p.nextToken()
		return &ast.Literal{LineNo: line, Value: ast.IntLit(v)}
	case token.TRUE:
		line := p.cur.Pos.Line
		p.nextToken()
		return &ast.Literal{LineNo: line, Value: ast.BoolLit(true)}
	case token.FALSE:
		line := p.cur.Pos.Line
		p.nextToken()
		return &ast.Literal{LineNo: line, Value: ast.BoolLit(false)}
	case token.MINUS:
		line := p.cur.Pos.Line
		p.nextToken()
		operand := p.parseUnary(multiplicative)
		zero := &ast.Literal{LineNo: line, Value: ast.IntLit(0)}
		return &ast.Binary{LineNo: line, Op: ast.MINUS, E1: zero, E2: operand}
	case token.LPAREN:
		p.nextToken()
		e := p.parseExpression(lowest)
		p.expect(token.RPAREN)
		return e
	default:
		p.errorf("Parse error: unexpected token %s in expression", p.cur.Type.String())
		tok := p.cur
		p.nextToken()
		return &ast.Literal{LineNo: tok.Pos.Line, Value: ast.IntLit(0)}
	}
}

func (p *Parser) parseIdentOrAssignOrCall() ast.Expression {
	line := p.cur.Pos.Line
	name := p.cur.Literal
	p.nextToken()

	if p.cur.Type == token.ASSIGN {
		p.nextToken()
		value := p.parseExpression(lowest)
		return &ast.Assign{LineNo: line, Name: name, Value: value}
	}

	if p.cur.Type == token.LPAREN {
		p.nextToken()
		var args []ast.Expression
		for p.cur.Type != token.RPAREN {
			args = append(args, p.parseExpression(lowest))
			if p.cur.Type == token.COMMA {
				p.nextToken()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
		return &ast.Call{LineNo: line, Name: name, Args: args}
	}

	return &ast.Variable{LineNo: line, Name: name}
}

func (p *Parser) parseIfElse() ast.Expression {
	line := p.cur.Pos.Line
	p.nextToken() // consume 'if'
	cond := p.parseExpression(lowest)
	if !p.expect(token.THEN) {
		return &ast.IfElse{LineNo: line, Cond: cond, Then: emptyChain(line), Else: emptyChain(line)}
	}
	thenE := p.parseExpression(lowest)
	if !p.expect(token.ELSE) {
		return &ast.IfElse{LineNo: line, Cond: cond, Then: thenE, Else: emptyChain(line)}
	}
	elseE := p.parseExpression(lowest)
	return &ast.IfElse{LineNo: line, Cond: cond, Then: thenE, Else: elseE}
}

// parseChain parses "{ e; e; ...; e }"; empty braces are the canonical
// Void unit.
func (p *Parser) parseChain() ast.Expression {
	line := p.cur.Pos.Line
	p.nextToken() // consume '{'

	var exprs []ast.Expression
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		exprs = append(exprs, p.parseExpression(lowest))
		if p.cur.Type == token.SEMI {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RBRACE)

	return &ast.Chain{LineNo: line, Exprs: exprs}
}

func emptyChain(line int) ast.Expression {
	return &ast.Chain{LineNo: line, Exprs: nil}
}

func parseIntLiteral(lit string) int32 {
	var v int32
	for _, r := range lit {
		v = v*10 + int32(r-'0')
	}
	return v
}
