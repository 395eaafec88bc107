// Package flatten implements the block flattener (C7): it converts a
// hoisted expression into a flat, ordered list of IfElseBlocks — TGT's
// (condition, action) rule pairs. Grounded on the original compiler's
// transform_to_if_else_blocks pass.
package flatten

import "github.com/creaturelang/critterc/internal/ast"

// Flatten converts a (hoisted) expression into an ordered list of
// IfElseBlocks. On an IfElse, the then-branch's blocks inherit a guard
// conjoined with the outer condition; the else-branch's blocks are
// appended unchanged, relying on TGT's first-match-wins rule evaluation
// to give them the correct (negated) effect.
func Flatten(expr ast.Expression) []ast.IfElseBlock {
	if ie, ok := expr.(*ast.IfElse); ok {
		thenBlocks := Flatten(ie.Then)
		elseBlocks := Flatten(ie.Else)

		blocks := make([]ast.IfElseBlock, 0, len(thenBlocks)+len(elseBlocks))
		for _, b := range thenBlocks {
			blocks = append(blocks, ast.IfElseBlock{
				Condition: &ast.Binary{LineNo: ie.LineNo, Op: ast.AND, E1: ie.Cond, E2: b.Condition},
				Action:    b.Action,
			})
		}
		blocks = append(blocks, elseBlocks...)
		return blocks
	}

	trueLit := &ast.Literal{LineNo: expr.Line(), Value: ast.BoolLit(true)}
	return []ast.IfElseBlock{{Condition: trueLit, Action: expr}}
}
