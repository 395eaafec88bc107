package pipeline

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestCompileConstantFoldedServeCall(t *testing.T) {
	result := Compile(`fun main(): void = serve(32 + 10)`, DefaultInlineDepth)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !strings.Contains(result.Output, "serve[42]") {
		t.Fatalf("expected serve[42] in output, got:\n%s", result.Output)
	}
}

func TestCompileInliningAndGlobalScenario(t *testing.T) {
	source := `
var a = 4;
fun b(v: int): int = v
fun main(): void = if true then serve(b(37) + 1 + a) else ({})
`
	result := Compile(source, DefaultInlineDepth)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !strings.Contains(result.Output, "mem[9] := 4") {
		t.Fatalf("expected global a to initialize mem[9], got:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "1 = 1 --> serve[(38 + mem[9])];") {
		t.Fatalf("expected the folded serve rule, got:\n%s", result.Output)
	}
}

func TestCompileHoistsIfElseOutOfChain(t *testing.T) {
	source := `
var x = 1;
fun main(): void = { if x > 0 then forward else backward; eat }
`
	result := Compile(source, DefaultInlineDepth)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !strings.Contains(result.Output, "forward eat") {
		t.Fatalf("expected 'forward eat' action, got:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "backward eat") {
		t.Fatalf("expected 'backward eat' action, got:\n%s", result.Output)
	}
}

func TestCompileRecursiveInlineWithinDepth(t *testing.T) {
	source := `
fun f(n: int): int = if n = 0 then 0 else n + f(n - 1)
fun main(): void = serve(f(3))
`
	result := Compile(source, 10)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !strings.Contains(result.Output, "serve[6]") {
		t.Fatalf("expected serve[6], got:\n%s", result.Output)
	}
}

func TestCompileUndefinedGlobalReportsError(t *testing.T) {
	result := Compile(`fun main(): void = x := 5`, DefaultInlineDepth)
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Undefined global variable") {
		t.Fatalf("unexpected error: %s", result.Errors[0])
	}
}

func TestCompileFullProgramSnapshot(t *testing.T) {
	source := `
var x = 1;
fun main(): void = { if x > 0 then forward else backward; eat }
`
	result := Compile(source, DefaultInlineDepth)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	snaps.MatchSnapshot(t, "branching_program_output", result.Output)
}
