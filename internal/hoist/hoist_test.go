package hoist

import (
	"testing"

	"github.com/creaturelang/critterc/internal/ast"
)

func TestHoistPushesIfElseOutOfBinary(t *testing.T) {
	// (if true then 1 else 2) + 3
	expr := &ast.Binary{
		Op: ast.PLUS,
		E1: &ast.IfElse{Cond: &ast.Literal{Value: ast.BoolLit(true)}, Then: &ast.Literal{Value: ast.IntLit(1)}, Else: &ast.Literal{Value: ast.IntLit(2)}},
		E2: &ast.Literal{Value: ast.IntLit(3)},
	}

	got := Hoist(expr)
	ie, ok := got.(*ast.IfElse)
	if !ok {
		t.Fatalf("expected top-level IfElse, got %T", got)
	}
	assertNoNestedIfElse(t, ie.Then)
	assertNoNestedIfElse(t, ie.Else)
}

func TestHoistPushesIfElseOutOfAssign(t *testing.T) {
	expr := &ast.Assign{
		Name:  "x",
		Value: &ast.IfElse{Cond: &ast.Literal{Value: ast.BoolLit(true)}, Then: &ast.Literal{Value: ast.IntLit(1)}, Else: &ast.Literal{Value: ast.IntLit(2)}},
	}

	got := Hoist(expr)
	ie, ok := got.(*ast.IfElse)
	if !ok {
		t.Fatalf("expected top-level IfElse, got %T", got)
	}
	if _, ok := ie.Then.(*ast.Assign); !ok {
		t.Fatalf("expected Assign in then-branch, got %T", ie.Then)
	}
	if _, ok := ie.Else.(*ast.Assign); !ok {
		t.Fatalf("expected Assign in else-branch, got %T", ie.Else)
	}
}

func TestHoistFourWayCombination(t *testing.T) {
	c1 := &ast.Literal{Value: ast.BoolLit(true)}
	c2 := &ast.Literal{Value: ast.BoolLit(false)}

	expr := &ast.Binary{
		Op: ast.PLUS,
		E1: &ast.IfElse{Cond: c1, Then: &ast.Literal{Value: ast.IntLit(1)}, Else: &ast.Literal{Value: ast.IntLit(2)}},
		E2: &ast.IfElse{Cond: c2, Then: &ast.Literal{Value: ast.IntLit(10)}, Else: &ast.Literal{Value: ast.IntLit(20)}},
	}

	got := Hoist(expr)
	assertNoNestedIfElseAnywhereBelowBinaryOrAssign(t, got)
}

func TestHoistChainOfLengthTwo(t *testing.T) {
	cond := &ast.Literal{Value: ast.BoolLit(true)}
	expr := &ast.Chain{Exprs: []ast.Expression{
		&ast.IfElse{Cond: cond, Then: &ast.Call{Name: "forward"}, Else: &ast.Call{Name: "backward"}},
		&ast.Call{Name: "eat"},
	}}

	got := Hoist(expr)
	ie, ok := got.(*ast.IfElse)
	if !ok {
		t.Fatalf("expected top-level IfElse after hoisting a chain, got %T", got)
	}
	thenChain, ok := ie.Then.(*ast.Chain)
	if !ok || len(thenChain.Exprs) != 2 {
		t.Fatalf("expected then-branch to be a 2-element chain, got %+v", ie.Then)
	}
}

func TestHoistIsIdempotent(t *testing.T) {
	expr := &ast.Binary{
		Op: ast.PLUS,
		E1: &ast.IfElse{Cond: &ast.Literal{Value: ast.BoolLit(true)}, Then: &ast.Literal{Value: ast.IntLit(1)}, Else: &ast.Literal{Value: ast.IntLit(2)}},
		E2: &ast.Literal{Value: ast.IntLit(3)},
	}

	once := Hoist(expr)
	twice := Hoist(once)

	if once.String() != twice.String() {
		t.Fatalf("hoist not idempotent:\nonce:  %s\ntwice: %s", once.String(), twice.String())
	}
}

func assertNoNestedIfElse(t *testing.T, expr ast.Expression) {
	t.Helper()
	switch e := expr.(type) {
	case *ast.Binary:
		if containsIfElse(e.E1) || containsIfElse(e.E2) {
			t.Errorf("found IfElse under Binary after hoisting: %s", e.String())
		}
	case *ast.Assign:
		if containsIfElse(e.Value) {
			t.Errorf("found IfElse under Assign after hoisting: %s", e.String())
		}
	}
}

func assertNoNestedIfElseAnywhereBelowBinaryOrAssign(t *testing.T, expr ast.Expression) {
	t.Helper()
	switch e := expr.(type) {
	case *ast.IfElse:
		assertNoNestedIfElseAnywhereBelowBinaryOrAssign(t, e.Then)
		assertNoNestedIfElseAnywhereBelowBinaryOrAssign(t, e.Else)
	default:
		assertNoNestedIfElse(t, expr)
	}
}

func containsIfElse(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.IfElse:
		return true
	case *ast.Binary:
		return containsIfElse(e.E1) || containsIfElse(e.E2)
	case *ast.Assign:
		return containsIfElse(e.Value)
	case *ast.Chain:
		for _, sub := range e.Exprs {
			if containsIfElse(sub) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
