package compiler

import "github.com/nhdc/desc/bytecode"

// emitJumpPlaceholder emits a Push whose operand is its own index (the
// self-referential bootstrap value the back-patch convention requires)
// and returns that index. The caller emits the jump opcode immediately
// after.
func (p *parser) emitJumpPlaceholder() int64 {
	idx := p.currentOffset()
	p.pushInt(idx)
	return idx
}

// patchJump rewrites the placeholder at idx so that, when the runtime
// adds it to the program counter at the jump instruction, control
// lands at the current offset: operand = target - stored.
func (p *parser) patchJump(idx int64) {
	target := p.currentOffset()
	cur := p.cur.Code[idx].Operand.(bytecode.IntOperand)
	p.cur.Code[idx].Operand = bytecode.IntOperand(target - int64(cur))
}

// patchJumpTo is patchJump with an explicit target, used by SWITCH's
// break-target patches where the target was already fixed when the
// function returns.
func (p *parser) patchJumpTo(idx, target int64) {
	cur := p.cur.Code[idx].Operand.(bytecode.IntOperand)
	p.cur.Code[idx].Operand = bytecode.IntOperand(target - int64(cur))
}
