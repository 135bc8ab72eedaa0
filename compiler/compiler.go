// Package compiler implements the recursive-descent parser/emitter: it
// consumes a located token stream from package lexer and produces a
// []bytecode.Level, resolving monster/object/trap names, packing
// operands, and back-patching jump targets as it goes.
//
// Grounded statement-by-statement on the reference parser; push-order
// quirks (trap, door, roomdoor, drawbridge, altar, mines init-map, the
// extra Copy before circle's SelEllipse) are preserved exactly — see
// DESIGN.md for the grounding ledger and the two Open Question
// decisions (FUNCTION body emission, mines push order).
package compiler

import (
	"fmt"

	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/desperr"
	"github.com/nhdc/desc/lexer"

	"github.com/dolthub/swiss"
)

// varDef records a declared variable's element type and array-ness.
type varDef struct {
	typ     varType
	isArray bool
}

type varType int

const (
	varInt varType = iota
	varString
	varCoord
	varRegion
	varMapChar
	varMonst
	varObj
	varSel
)

type parser struct {
	toks []lexer.Located[lexer.Token]
	pos  int

	levels []bytecode.Level
	cur    bytecode.Level

	levelName      string
	containerDepth int
	roomfill       int64

	vars *swiss.Map[string, varDef]

	loopStack []*loopFrame
}

// Compile lexes and parses src, returning one bytecode.Level per
// MAZE/LEVEL header found. Compile is safe to call concurrently from
// multiple goroutines: each call owns independent state, matching the
// teacher's asm.Assemble contract.
func Compile(name string, src string) ([]bytecode.Level, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, vars: swiss.NewMap[string, varDef](8)}
	return p.parse()
}

func (p *parser) parse() ([]bytecode.Level, error) {
	for {
		tok := p.peek()
		switch tok.Value.Kind {
		case lexer.KEof:
			p.finishLevel()
			return p.levels, nil
		case lexer.KMaze:
			if err := p.parseMaze(); err != nil {
				return nil, err
			}
		case lexer.KLevel:
			if err := p.parseLevelDef(); err != nil {
				return nil, err
			}
		default:
			if err := p.parseBlockUnit(); err != nil {
				return nil, err
			}
		}
	}
}

func (p *parser) finishLevel() {
	if p.levelName == "" {
		return
	}
	p.levels = append(p.levels, bytecode.Level{Name: p.levelName, Code: p.cur.Code})
	p.levelName = ""
	p.cur = bytecode.Level{}
	p.vars = swiss.NewMap[string, varDef](8)
	p.containerDepth = 0
	p.roomfill = 1
	p.loopStack = nil
}

// --- token stream helpers ---

func (p *parser) peek() lexer.Located[lexer.Token] {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) peekN(n int) lexer.Located[lexer.Token] {
	i := p.pos + n
	if i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() lexer.Located[lexer.Token] {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	pos := p.peek().Pos
	return &desperr.ParseError{Line: pos.Line, Col: pos.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k lexer.Kind, what string) (lexer.Located[lexer.Token], error) {
	t := p.peek()
	if t.Value.Kind != k {
		return t, p.errorf("expected %s", what)
	}
	p.next()
	return t, nil
}

// --- emission helpers ---

func (p *parser) emit(op bytecode.Opcode) {
	p.cur.Code = append(p.cur.Code, bytecode.Instruction{Op: op})
}

func (p *parser) emitOperand(op bytecode.Opcode, operand bytecode.Operand) {
	p.cur.Code = append(p.cur.Code, bytecode.Instruction{Op: op, Operand: operand})
}

func (p *parser) pushInt(v int64) {
	p.emitOperand(bytecode.OpPush, bytecode.IntOperand(v))
}

func (p *parser) pushStr(s string) {
	p.emitOperand(bytecode.OpPush, bytecode.StringOperand(s))
}

func (p *parser) pushVar(name string) {
	p.emitOperand(bytecode.OpPush, bytecode.VarOperand(ensureDollar(name)))
}

func (p *parser) pushCoord(c bytecode.CoordOperand) {
	p.emitOperand(bytecode.OpPush, c)
}

func (p *parser) pushRegion(r bytecode.RegionOperand) {
	p.emitOperand(bytecode.OpPush, r)
}

func (p *parser) pushMapChar(m bytecode.MapCharOperand) {
	p.emitOperand(bytecode.OpPush, m)
}

func (p *parser) pushMonst(m bytecode.MonstOperand) {
	p.emitOperand(bytecode.OpPush, m)
}

func (p *parser) pushObj(o bytecode.ObjOperand) {
	p.emitOperand(bytecode.OpPush, o)
}

// storeVar assumes the value to store is already on the stack and
// completes a scalar variable assignment: push N=0; push name; VarInit.
func (p *parser) storeVar(name string) {
	p.pushInt(0)
	p.pushVar(name)
	p.emit(bytecode.OpVarInit)
}

// storeArray assumes n element values are already on the stack and
// completes an array variable assignment: push count; push name; VarInit.
func (p *parser) storeArray(name string, count int64) {
	p.pushInt(count)
	p.pushVar(name)
	p.emit(bytecode.OpVarInit)
}

// currentOffset is the index the next emitted instruction will occupy.
func (p *parser) currentOffset() int64 {
	return int64(len(p.cur.Code))
}

func ensureDollar(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name
	}
	return "$" + name
}
