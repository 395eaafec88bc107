// Package emit implements the emitter (C8): prints a FullyInlinedProgram
// in TGT concrete syntax, mapping globals to memory slots and rendering
// built-in calls through the canonical builtins table. Grounded on the
// original compiler's pretty_print / compile_to_critter_lang pass.
package emit

import (
	"fmt"
	"strings"

	"github.com/creaturelang/critterc/internal/ast"
	"github.com/creaturelang/critterc/internal/builtins"
)

// InitSentinelSlot is the one-time init sentinel memory cell.
const InitSentinelSlot = 8

// FirstGlobalSlot is where the first declared global is written; later
// globals occupy consecutive slots in source order.
const FirstGlobalSlot = 9

// Emit renders prog as TGT source text: an init rule followed by one rule
// per IfElseBlock, each "<condition> --> <action>;" on its own line.
func Emit(prog *ast.FullyInlinedProgram) string {
	slots := slotMap(prog.Globals)

	var b strings.Builder
	b.WriteString(initRule(prog.Globals, slots))
	b.WriteByte('\n')

	for _, blk := range prog.Blocks {
		b.WriteString(printExpr(blk.Condition, slots))
		b.WriteString(" -->")
		// Actions are always Void-typed (Assign or a void-returning Call);
		// both print their own leading space, so no separator is added here.
		b.WriteString(printExpr(blk.Action, slots))
		b.WriteString(";\n")
	}

	return b.String()
}

// slotMap assigns globals[i] to memory slot FirstGlobalSlot+i, in source order.
func slotMap(globals []*ast.GlobalVarDef) map[string]int {
	slots := make(map[string]int, len(globals))
	for i, g := range globals {
		slots[g.Name] = FirstGlobalSlot + i
	}
	return slots
}

// initRule builds the one-time sentinel-guarded initialization rule:
// "mem[8] = 0 --> mem[8] := 1 mem[9] := <init0> ...".
func initRule(globals []*ast.GlobalVarDef, slots map[string]int) string {
	var action strings.Builder
	fmt.Fprintf(&action, " mem[%d] := 1", InitSentinelSlot)
	for _, g := range globals {
		fmt.Fprintf(&action, " mem[%d] := %d", slots[g.Name], g.InitVal)
	}
	return fmt.Sprintf("mem[%d] = 0 -->%s;", InitSentinelSlot, action.String())
}

func printExpr(expr ast.Expression, slots map[string]int) string {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Value.IsBool {
			if e.Value.BoolVal {
				return "1 = 1"
			}
			return "1 = 0"
		}
		return fmt.Sprintf("%d", e.Value.IntVal)

	case *ast.Variable:
		return fmt.Sprintf("mem[%d]", slots[e.Name])

	case *ast.Binary:
		return printBinary(e, slots)

	case *ast.Assign:
		return fmt.Sprintf(" mem[%d] := %s", slots[e.Name], printExpr(e.Value, slots))

	case *ast.Chain:
		var b strings.Builder
		for _, sub := range e.Exprs {
			b.WriteString(printExpr(sub, slots))
		}
		return b.String()

	case *ast.Call:
		return printCall(e, slots)

	case *ast.IfElse:
		// Invariant 3/4 guarantee no IfElse reaches the emitter; this arm
		// exists only so the switch stays exhaustive over Expression.
		panic("emit: unexpected IfElse at emission time, hoist/flatten invariant violated")
	}

	panic(fmt.Sprintf("emit: unhandled expression node %T", expr))
}

func printBinary(e *ast.Binary, slots map[string]int) string {
	e1 := printExpr(e.E1, slots)
	e2 := printExpr(e.E2, slots)

	switch {
	case e.Op.IsLogical():
		word := "and"
		if e.Op == ast.OR {
			word = "or"
		}
		return fmt.Sprintf("{%s %s %s}", e1, word, e2)

	case e.Op.IsArithmetic():
		sym := e.Op.String()
		if e.Op == ast.MOD {
			sym = "mod"
		}
		return fmt.Sprintf("(%s %s %s)", e1, sym, e2)

	case e.Op.IsOrdering(), e.Op.IsEquality():
		sym := e.Op.String()
		if e.Op == ast.NE {
			sym = "!="
		}
		return fmt.Sprintf("(%s %s %s)", e1, sym, e2)
	}

	return fmt.Sprintf("(%s %s %s)", e1, e.Op.String(), e2)
}

func printCall(e *ast.Call, slots map[string]int) string {
	b, ok := builtins.Lookup(e.Name)
	if !ok {
		panic(fmt.Sprintf("emit: unknown built-in %q at emission time", e.Name))
	}

	// A void-returning call carries its own leading space, so that chains
	// of actions (and the gap after "-->") separate correctly with no
	// other punctuation to rely on.
	prefix := ""
	if e.Type == ast.Void {
		prefix = " "
	}

	switch b.Emit {
	case builtins.Bare, builtins.Plain:
		return prefix + b.Mnemonic
	case builtins.Bracketed:
		arg := printExpr(e.Args[0], slots)
		return fmt.Sprintf("%s%s[%s]", prefix, b.Mnemonic, arg)
	}

	panic("emit: unknown builtin emit form")
}
