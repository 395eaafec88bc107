// Package pipeline orchestrates the lowering passes end to end: parse →
// check → inline → hoist → flatten → emit. Modeled on the processor/
// context pattern used elsewhere in the retrieval pack for sequential,
// continue-on-error staged execution, adapted here to short-circuit on
// type errors per the error-handling contract (a non-empty error list
// means nothing downstream runs).
package pipeline

import (
	"github.com/creaturelang/critterc/internal/ast"
	"github.com/creaturelang/critterc/internal/emit"
	"github.com/creaturelang/critterc/internal/errors"
	"github.com/creaturelang/critterc/internal/flatten"
	"github.com/creaturelang/critterc/internal/fold"
	"github.com/creaturelang/critterc/internal/hoist"
	"github.com/creaturelang/critterc/internal/inline"
	"github.com/creaturelang/critterc/internal/lexer"
	"github.com/creaturelang/critterc/internal/parser"
	"github.com/creaturelang/critterc/internal/semantic"
)

// DefaultInlineDepth is the bound on self-recursive inlining used by the
// CLI driver, matching the hardcoded constant of the program this
// pipeline's design is based on.
const DefaultInlineDepth = 20

// Result is the outcome of compiling one SRC source program.
type Result struct {
	// Output is the rendered TGT program. Valid only when Errors is empty.
	Output string
	// Errors holds every accumulated diagnostic, already formatted as
	// "Line L: message" strings, sorted by line.
	Errors []string
}

// Compile runs the full pipeline over source, using depth as the
// self-inlining bound. Parse errors short-circuit before type checking;
// a non-empty checker error list short-circuits before inlining.
func Compile(source string, depth int) Result {
	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		return Result{Errors: errs}
	}

	checked, checkErrs := semantic.Check(prog, semantic.DefaultRuntimeEnv())
	if len(checkErrs) > 0 {
		return Result{Errors: errors.FormatErrors(checkErrs)}
	}

	fip := lower(checked, depth)
	return Result{Output: emit.Emit(fip)}
}

// lower runs the checked-program-only portion of the pipeline: inline →
// hoist → flatten, producing the FullyInlinedProgram the emitter consumes.
func lower(checked *ast.Program, depth int) *ast.FullyInlinedProgram {
	main := fold.Fold(inline.Program(checked, depth))
	hoisted := hoist.Hoist(main)
	blocks := flatten.Flatten(hoisted)

	return &ast.FullyInlinedProgram{Globals: checked.Globals, Blocks: blocks}
}
