// Package hoist implements the if/else hoister (C6): it pushes every
// IfElse node outward so that none remains a descendant of a Binary or
// Assign node. Grounded on the original compiler's hoist_if_else pass,
// including its fixed four-branch canonical ordering for determinism.
package hoist

import "github.com/creaturelang/critterc/internal/ast"

// Hoist rewrites expr so that no IfElse is a descendant of a Binary or
// Assign. Hoist is idempotent up to the canonical four-branch ordering:
// Hoist(Hoist(e)) == Hoist(e).
func Hoist(expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.Literal, *ast.Variable, *ast.Call:
		// Leaves: calls are assumed free of IfElse after inlining, since
		// operands of a call are never hoisted out of it.
		return expr

	case *ast.Binary:
		return hoistBinary(e.LineNo, e.Op, Hoist(e.E1), Hoist(e.E2))

	case *ast.Assign:
		value := Hoist(e.Value)
		if ie, ok := value.(*ast.IfElse); ok {
			return &ast.IfElse{
				LineNo: ie.LineNo,
				Cond:   ie.Cond,
				Then:   Hoist(&ast.Assign{LineNo: e.LineNo, Name: e.Name, Value: ie.Then}),
				Else:   Hoist(&ast.Assign{LineNo: e.LineNo, Name: e.Name, Value: ie.Else}),
			}
		}
		return &ast.Assign{LineNo: e.LineNo, Name: e.Name, Value: value}

	case *ast.IfElse:
		return &ast.IfElse{LineNo: e.LineNo, Cond: e.Cond, Then: Hoist(e.Then), Else: Hoist(e.Else)}

	case *ast.Chain:
		return hoistChain(e.LineNo, e.Exprs)
	}

	return expr
}

// hoistBinary applies the four-way case split on a Binary's two
// (already-hoisted) operands.
func hoistBinary(line int, op ast.BinaryOperator, x, y ast.Expression) ast.Expression {
	ix, xIsIf := x.(*ast.IfElse)
	iy, yIsIf := y.(*ast.IfElse)

	switch {
	case xIsIf && yIsIf:
		return fourWay(line, ix.Cond, iy.Cond,
			func(a, b ast.Expression) ast.Expression { return Hoist(&ast.Binary{LineNo: line, Op: op, E1: a, E2: b}) },
			ix.Then, ix.Else, iy.Then, iy.Else)

	case xIsIf:
		return &ast.IfElse{
			LineNo: ix.LineNo,
			Cond:   ix.Cond,
			Then:   Hoist(&ast.Binary{LineNo: line, Op: op, E1: ix.Then, E2: y}),
			Else:   Hoist(&ast.Binary{LineNo: line, Op: op, E1: ix.Else, E2: y}),
		}

	case yIsIf:
		return &ast.IfElse{
			LineNo: iy.LineNo,
			Cond:   iy.Cond,
			Then:   Hoist(&ast.Binary{LineNo: line, Op: op, E1: x, E2: iy.Then}),
			Else:   Hoist(&ast.Binary{LineNo: line, Op: op, E1: x, E2: iy.Else}),
		}

	default:
		return &ast.Binary{LineNo: line, Op: op, E1: x, E2: y}
	}
}

// fourWay builds the canonical nested IfElse for two conditions c1, c2
// with four branch combinations, in the fixed order
// (both-true, first-true/second-false, first-false/second-true, both-false).
// The inner guards are c1 and then c2 alone: each sits in the else branch
// of the guards before it, which already rule out the earlier combinations.
func fourWay(line int, c1, c2 ast.Expression, combine func(a, b ast.Expression) ast.Expression, a, b, d, e ast.Expression) ast.Expression {
	bothTrue := combine(a, d)
	firstTrueSecondFalse := combine(a, e)
	firstFalseSecondTrue := combine(b, d)
	bothFalse := combine(b, e)

	return &ast.IfElse{
		LineNo: line,
		Cond:   &ast.Binary{LineNo: line, Op: ast.AND, E1: c1, E2: c2},
		Then:   bothTrue,
		Else: &ast.IfElse{
			LineNo: line,
			Cond:   c1,
			Then:   firstTrueSecondFalse,
			Else: &ast.IfElse{
				LineNo: line,
				Cond:   c2,
				Then:   firstFalseSecondTrue,
				Else:   bothFalse,
			},
		},
	}
}

// hoistChain reduces a chain of length >= 2 by peeling off the last
// element and recursing on the rest, applying the same four-case pattern
// as hoistBinary but producing Chain nodes instead of Binary nodes.
func hoistChain(line int, exprs []ast.Expression) ast.Expression {
	if len(exprs) == 0 {
		return &ast.Chain{LineNo: line}
	}
	if len(exprs) == 1 {
		// Returned bare (not Chain-wrapped): per invariant 3, a hoisted
		// Chain either contains no IfElse or *is* an IfElse at the top.
		return Hoist(exprs[0])
	}

	rest := hoistChain(line, exprs[:len(exprs)-1])
	last := Hoist(exprs[len(exprs)-1])

	restIf, restIsIf := rest.(*ast.IfElse)
	lastIf, lastIsIf := last.(*ast.IfElse)

	combine := func(a, b ast.Expression) ast.Expression {
		return Hoist(appendChain(line, a, b))
	}

	switch {
	case restIsIf && lastIsIf:
		return fourWay(line, restIf.Cond, lastIf.Cond, combine, restIf.Then, restIf.Else, lastIf.Then, lastIf.Else)
	case restIsIf:
		return &ast.IfElse{
			LineNo: restIf.LineNo,
			Cond:   restIf.Cond,
			Then:   Hoist(appendChain(line, restIf.Then, last)),
			Else:   Hoist(appendChain(line, restIf.Else, last)),
		}
	case lastIsIf:
		return &ast.IfElse{
			LineNo: lastIf.LineNo,
			Cond:   lastIf.Cond,
			Then:   Hoist(appendChain(line, rest, lastIf.Then)),
			Else:   Hoist(appendChain(line, rest, lastIf.Else)),
		}
	default:
		return appendChain(line, rest, last)
	}
}

// appendChain concatenates the expressions of a and b into one flat Chain.
func appendChain(line int, a, b ast.Expression) ast.Expression {
	var exprs []ast.Expression
	if c, ok := a.(*ast.Chain); ok {
		exprs = append(exprs, c.Exprs...)
	} else {
		exprs = append(exprs, a)
	}
	if c, ok := b.(*ast.Chain); ok {
		exprs = append(exprs, c.Exprs...)
	} else {
		exprs = append(exprs, b)
	}
	return &ast.Chain{LineNo: line, Exprs: exprs}
}
