package fold

import (
	"testing"

	"github.com/creaturelang/critterc/internal/ast"
)

func intLit(n int32) ast.Expression  { return &ast.Literal{Value: ast.IntLit(n)} }
func boolLit(b bool) ast.Expression  { return &ast.Literal{Value: ast.BoolLit(b)} }

func TestFoldArithmetic(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOperator
		a, b int32
		want int32
	}{
		{ast.MUL, 6, 7, 42},
		{ast.PLUS, 38, 4, 42},
		{ast.MINUS, 50, 8, 42},
		{ast.DIV, 84, 2, 42},
		{ast.MOD, 10, 3, 1},
	}
	for _, c := range cases {
		got := Fold(&ast.Binary{Op: c.op, E1: intLit(c.a), E2: intLit(c.b)})
		lit, ok := got.(*ast.Literal)
		if !ok || lit.Value.IntVal != c.want {
			t.Errorf("%s(%d,%d): want %d, got %+v", c.op.String(), c.a, c.b, c.want, got)
		}
	}
}

func TestFoldDivisionByZeroNotFolded(t *testing.T) {
	for _, op := range []ast.BinaryOperator{ast.DIV, ast.MOD} {
		e := &ast.Binary{Op: op, E1: intLit(5), E2: intLit(0)}
		got := Fold(e)
		if _, ok := got.(*ast.Binary); !ok {
			t.Errorf("%s by zero: expected unfolded Binary, got %T", op.String(), got)
		}
	}
}

func TestFoldComparisonAndEquality(t *testing.T) {
	got := Fold(&ast.Binary{Op: ast.LT, E1: intLit(1), E2: intLit(2)})
	lit := got.(*ast.Literal)
	if !lit.Value.IsBool || !lit.Value.BoolVal {
		t.Fatalf("expected true, got %+v", lit.Value)
	}

	got = Fold(&ast.Binary{Op: ast.EQ, E1: intLit(2), E2: intLit(2)})
	lit = got.(*ast.Literal)
	if !lit.Value.IsBool || !lit.Value.BoolVal {
		t.Fatalf("expected 2 = 2 to fold to true, got %+v", lit.Value)
	}
}

func TestFoldLogical(t *testing.T) {
	got := Fold(&ast.Binary{Op: ast.AND, E1: boolLit(true), E2: boolLit(false)})
	lit := got.(*ast.Literal)
	if !lit.Value.IsBool || lit.Value.BoolVal {
		t.Fatalf("expected false, got %+v", lit.Value)
	}
}

func TestFoldIfElseOnLiteralCondition(t *testing.T) {
	thenE := intLit(1)
	elseE := intLit(2)

	gotTrue := Fold(&ast.IfElse{Cond: boolLit(true), Then: thenE, Else: elseE})
	if lit, ok := gotTrue.(*ast.Literal); !ok || lit.Value.IntVal != 1 {
		t.Fatalf("expected literal 1, got %+v", gotTrue)
	}

	gotFalse := Fold(&ast.IfElse{Cond: boolLit(false), Then: thenE, Else: elseE})
	if lit, ok := gotFalse.(*ast.Literal); !ok || lit.Value.IntVal != 2 {
		t.Fatalf("expected literal 2, got %+v", gotFalse)
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	e := &ast.Binary{
		Op: ast.PLUS,
		E1: &ast.Binary{Op: ast.MUL, E1: intLit(6), E2: intLit(7)},
		E2: &ast.IfElse{Cond: boolLit(true), Then: intLit(0), Else: intLit(100)},
	}

	once := Fold(e)
	twice := Fold(once)

	l1, ok1 := once.(*ast.Literal)
	l2, ok2 := twice.(*ast.Literal)
	if !ok1 || !ok2 || l1.Value.IntVal != l2.Value.IntVal {
		t.Fatalf("fold not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestFoldLeavesVariableAndCallUnreduced(t *testing.T) {
	v := &ast.Variable{Name: "x"}
	if got := Fold(v); got != v {
		t.Errorf("expected Variable to pass through unchanged structurally, got %+v", got)
	}

	call := &ast.Call{Name: "serve", Args: []ast.Expression{intLit(1)}}
	got := Fold(call)
	if _, ok := got.(*ast.Call); !ok {
		t.Errorf("expected Call to remain a Call, got %T", got)
	}
}
