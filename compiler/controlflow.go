package compiler

import (
	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/lexer"
)

// negatedJump maps a comparison operator to the jump opcode that skips
// the THEN branch when the comparison is false, i.e. the opcode that
// fires on the negated condition.
func negatedJump(k lexer.Kind) (bytecode.Opcode, bool) {
	switch k {
	case lexer.KCompareEq:
		return bytecode.OpJne, true
	case lexer.KCompareNe:
		return bytecode.OpJe, true
	case lexer.KCompareLt:
		return bytecode.OpJge, true
	case lexer.KCompareLe:
		return bytecode.OpJg, true
	case lexer.KCompareGt:
		return bytecode.OpJle, true
	case lexer.KCompareGe:
		return bytecode.OpJl, true
	default:
		return 0, false
	}
}

// parseCondition parses a comparison between two integer expressions
// (bracketed or bare) and emits Cmp followed by the negated jump's
// placeholder, returning the placeholder index to patch.
func (p *parser) parseCondition() (int64, error) {
	bracketed := p.peek().Value.Kind == lexer.KLBracket
	if bracketed {
		p.next()
	}
	if err := p.parseMathExpr(); err != nil {
		return 0, err
	}
	op, ok := negatedJump(p.peek().Value.Kind)
	if !ok {
		return 0, p.errorf("expected comparison operator")
	}
	p.next()
	if err := p.parseMathExpr(); err != nil {
		return 0, err
	}
	if bracketed {
		if _, err := p.expect(lexer.KRBracket, "']'"); err != nil {
			return 0, err
		}
	}
	p.emit(bytecode.OpCmp)
	idx := p.emitJumpPlaceholder()
	p.emit(op)
	return idx, nil
}

// parseIf handles IF (cond) { ... } optionally followed by ELSE { ... }.
func (p *parser) parseIf() error {
	p.next() // IF
	skipIdx, err := p.parseCondition()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
		return err
	}
	if err := p.parseBlock(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KRBrace, "'}'"); err != nil {
		return err
	}
	if p.peek().Value.Kind == lexer.KElse {
		p.next()
		elseSkip := p.emitJumpPlaceholder()
		p.emit(bytecode.OpJmp)
		p.patchJump(skipIdx)
		if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
			return err
		}
		if err := p.parseBlock(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRBrace, "'}'"); err != nil {
			return err
		}
		p.patchJump(elseSkip)
		return nil
	}
	p.patchJump(skipIdx)
	return nil
}

// parseFor handles `FOR $v = s TO e { body }`. Schema: store $v from
// s; store "$v end" from e; store "$v step" from sign(e-s); top: body;
// load $v, load "$v end", Cmp, load "$v step", load $v, Add, store $v;
// push (top-here), where here is that push's own index; Jne. The loop runs ascending or descending
// depending on step's sign, so a single Jne termination test covers
// both directions.
func (p *parser) parseFor() error {
	p.next() // FOR
	nameTok, err := p.expect(lexer.KVariable, "loop variable")
	if err != nil {
		return err
	}
	name := nameTok.Value.Str
	endName := name + " end"
	stepName := name + " step"

	if _, err := p.expect(lexer.KEquals, "'='"); err != nil {
		return err
	}
	if err := p.parseMathExpr(); err != nil { // s
		return err
	}
	p.storeVar(name)

	if _, err := p.expect(lexer.KTo, "'to'"); err != nil {
		return err
	}
	if err := p.parseMathExpr(); err != nil { // e
		return err
	}
	p.storeVar(endName)

	p.pushVar(endName)
	p.pushVar(name)
	p.emit(bytecode.OpMathSub)
	p.emit(bytecode.OpMathSign)
	p.storeVar(stepName)

	top := p.currentOffset()

	if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
		return err
	}
	frame := p.pushLoopFrame()
	if err := p.parseBlock(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KRBrace, "'}'"); err != nil {
		return err
	}

	p.pushVar(name)
	p.pushVar(endName)
	p.emit(bytecode.OpCmp)
	p.pushVar(stepName)
	p.pushVar(name)
	p.emit(bytecode.OpMathAdd)
	p.storeVar(name)
	backIdx := p.emitJumpPlaceholder()
	p.patchJumpTo(backIdx, top)
	p.emit(bytecode.OpJne)

	end := p.currentOffset()
	for _, idx := range p.popLoopFrame(frame) {
		p.patchJumpTo(idx, end)
	}
	return nil
}

// parseLoop handles LOOP { ... } as an unconditional back-edge; BREAK
// inside the body is resolved by parseBlock recording break indices
// against the enclosing loop/switch frame.
func (p *parser) parseLoop() error {
	p.next() // LOOP
	top := p.currentOffset()
	if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
		return err
	}
	breaks := p.pushLoopFrame()
	if err := p.parseBlock(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KRBrace, "'}'"); err != nil {
		return err
	}
	backIdx := p.emitJumpPlaceholder()
	p.patchJumpTo(backIdx, top)
	p.emit(bytecode.OpJmp)
	end := p.currentOffset()
	for _, idx := range p.popLoopFrame(breaks) {
		p.patchJumpTo(idx, end)
	}
	return nil
}

// loopFrame tracks BREAK placeholder indices for the innermost
// LOOP/SWITCH so BREAK can patch them once the enclosing construct's
// end offset is known.
type loopFrame struct {
	breaks []int64
}

func (p *parser) pushLoopFrame() *loopFrame {
	f := &loopFrame{}
	p.loopStack = append(p.loopStack, f)
	return f
}

func (p *parser) popLoopFrame(f *loopFrame) []int64 {
	p.loopStack = p.loopStack[:len(p.loopStack)-1]
	return f.breaks
}

func (p *parser) recordBreak(idx int64) {
	if len(p.loopStack) == 0 {
		return
	}
	top := p.loopStack[len(p.loopStack)-1]
	top.breaks = append(top.breaks, idx)
}

// parseSwitch handles SWITCH (expr) { CASE n { ... } ... DEFAULT { ... } }.
// Each CASE value is compared against the switch expression in turn;
// DEFAULT, if present, must be last.
func (p *parser) parseSwitch() error {
	p.next() // SWITCH
	if _, err := p.expect(lexer.KLParen, "'('"); err != nil {
		return err
	}
	if err := p.parseMathExpr(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
		return err
	}

	frame := p.pushLoopFrame()
	var skipIdx int64 = -1
	for p.peek().Value.Kind == lexer.KCase {
		if skipIdx != -1 {
			p.patchJump(skipIdx)
		}
		p.next()
		val, err := p.parseInteger()
		if err != nil {
			return err
		}
		p.pushInt(val)
		p.emit(bytecode.OpCmp)
		idx := p.emitJumpPlaceholder()
		p.emit(bytecode.OpJne)
		skipIdx = idx
		if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
			return err
		}
		if err := p.parseCaseBody(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRBrace, "'}'"); err != nil {
			return err
		}
	}
	if skipIdx != -1 {
		p.patchJump(skipIdx)
	}
	if p.peek().Value.Kind == lexer.KDefault {
		p.next()
		if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
			return err
		}
		if err := p.parseCaseBody(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRBrace, "'}'"); err != nil {
			return err
		}
	}
	if _, err := p.expect(lexer.KRBrace, "'}'"); err != nil {
		return err
	}

	end := p.currentOffset()
	for _, idx := range p.popLoopFrame(frame) {
		p.patchJumpTo(idx, end)
	}
	return nil
}

// parseCaseBody is parseBlock restricted to the statements legal inside
// a CASE/DEFAULT arm, plus BREAK.
func (p *parser) parseCaseBody() error {
	return p.parseBlock()
}

// parsePercentStatement handles `[N%]: stmt`, gating a single
// following statement on a once-per-build Rn2(100) roll. Emission
// order is fixed: push N; push 100; Rn2; push 0; Cmp; push PH; Jg.
func (p *parser) parsePercentStatement() error {
	pct := p.next().Value.Int
	if err := p.expectColon(); err != nil {
		return err
	}
	p.pushInt(pct)
	p.pushInt(100)
	p.emit(bytecode.OpRn2)
	p.pushInt(0)
	p.emit(bytecode.OpCmp)
	skipIdx := p.emitJumpPlaceholder()
	p.emit(bytecode.OpJg)
	if err := p.parseBlockUnit(); err != nil {
		return err
	}
	p.patchJump(skipIdx)
	return nil
}
