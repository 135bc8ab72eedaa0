package compiler

import (
	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/lexer"
	"github.com/nhdc/desc/names"
	"github.com/nhdc/desc/terrain"
)

func (p *parser) parseString() (string, error) {
	t := p.peek()
	if t.Value.Kind != lexer.KString {
		return "", p.errorf("expected string")
	}
	p.next()
	return t.Value.Str, nil
}

func (p *parser) parseInteger() (int64, error) {
	t := p.peek()
	if t.Value.Kind != lexer.KInteger {
		return 0, p.errorf("expected integer")
	}
	p.next()
	return t.Value.Int, nil
}

// parseMathExpr parses an integer/dice primary, then chains `+`/`-`
// suffixes by pushing each operand and emitting MathAdd/MathSub.
func (p *parser) parseMathExpr() error {
	if err := p.parseMathPrimary(); err != nil {
		return err
	}
	for {
		switch p.peek().Value.Kind {
		case lexer.KPlus:
			p.next()
			if err := p.parseMathPrimary(); err != nil {
				return err
			}
			p.emit(bytecode.OpMathAdd)
		case lexer.KMinus:
			p.next()
			if err := p.parseMathPrimary(); err != nil {
				return err
			}
			p.emit(bytecode.OpMathSub)
		default:
			return nil
		}
	}
}

func (p *parser) parseMathPrimary() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KInteger:
		p.next()
		p.pushInt(t.Value.Int)
		return nil
	case lexer.KDice:
		p.next()
		p.pushInt(t.Value.Num)
		p.pushInt(t.Value.Die)
		p.emit(bytecode.OpDice)
		return nil
	case lexer.KVariable:
		return p.parseVariableRead(t.Value.Str)
	default:
		return p.errorf("expected integer, dice, or variable")
	}
}

// parseIntegerOrVar handles a plain integer, dice, or a $var[idx]
// subscripted read.
func (p *parser) parseIntegerOrVar() error {
	return p.parseMathExpr()
}

// parseVariableRead pushes a variable reference, consuming an optional
// [idx] subscript (the subscript itself is parsed but the ABI only
// needs the variable name pushed; the runtime resolves indexing).
func (p *parser) parseVariableRead(name string) error {
	p.next() // consume Variable token
	if p.peek().Value.Kind == lexer.KLBracket {
		if err := p.skipSubscript(); err != nil {
			return err
		}
	}
	p.pushVar(name)
	return nil
}

// skipSubscript consumes a balanced `[ ... ]` without emitting any
// bytecode: the ABI carries a bare variable-name operand for an
// indexed read (the runtime resolves the element), so the subscript
// expression itself is parsed only to validate syntax and advance the
// cursor, not to drive emission.
func (p *parser) skipSubscript() error {
	if _, err := p.expect(lexer.KLBracket, "'['"); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		t := p.peek()
		switch t.Value.Kind {
		case lexer.KEof:
			return p.errorf("unexpected end of input in subscript")
		case lexer.KLBracket:
			depth++
		case lexer.KRBracket:
			depth--
		}
		p.next()
	}
	return nil
}

func (p *parser) parseStringExpr() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KString:
		p.next()
		p.pushStr(t.Value.Str)
		return nil
	case lexer.KVariable:
		p.next()
		if p.peek().Value.Kind == lexer.KLBracket {
			if err := p.skipSubscript(); err != nil {
				return err
			}
		}
		p.pushVar(t.Value.Str)
		return nil
	default:
		return p.errorf("expected string or variable")
	}
}

func (p *parser) parseCoordOrVar() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KRandom:
		p.next()
		p.pushCoord(bytecode.RandomCoord())
		return nil
	case lexer.KLParen:
		p.next()
		x, err := p.parseInteger()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		y, err := p.parseInteger()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
			return err
		}
		p.pushCoord(bytecode.CoordOperand{X: int8(x), Y: int8(y)})
		return nil
	case lexer.KVariable:
		p.next()
		if p.peek().Value.Kind == lexer.KLBracket {
			if err := p.skipSubscript(); err != nil {
				return err
			}
		}
		p.pushVar(t.Value.Str)
		return nil
	case lexer.KRndCoord:
		p.next()
		if _, err := p.expect(lexer.KLParen, "'('"); err != nil {
			return err
		}
		if err := p.parseTerSelection(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
			return err
		}
		p.emit(bytecode.OpSelRndCoord)
		return nil
	default:
		return p.errorf("expected coordinate")
	}
}

func (p *parser) parseRegionOrVar() (bytecode.RegionOperand, bool, error) {
	t := p.peek()
	if t.Value.Kind == lexer.KVariable {
		p.next()
		p.pushVar(t.Value.Str)
		return bytecode.RegionOperand{}, true, nil
	}
	if _, err := p.expect(lexer.KLParen, "'('"); err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	x1, err := p.parseInteger()
	if err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	y1, err := p.parseInteger()
	if err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	x2, err := p.parseInteger()
	if err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	y2, err := p.parseInteger()
	if err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
		return bytecode.RegionOperand{}, false, err
	}
	return bytecode.RegionOperand{X1: int8(x1), Y1: int8(y1), X2: int8(x2), Y2: int8(y2)}, false, nil
}

func (p *parser) parseMapCharOrVar() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KRandom:
		p.next()
		p.pushMapChar(bytecode.MapCharOperand{Type: -1, Lit: -1})
		return nil
	case lexer.KChar:
		p.next()
		typ := whatMapChar(t.Value.Ch)
		p.pushMapChar(bytecode.MapCharOperand{Type: int8(typ), Lit: -1})
		return nil
	case lexer.KLParen:
		p.next()
		ct := p.peek()
		if ct.Value.Kind != lexer.KChar {
			return p.errorf("expected character")
		}
		p.next()
		typ := whatMapChar(ct.Value.Ch)
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		var lit int16
		switch p.peek().Value.Kind {
		case lexer.KLit:
			p.next()
			lit = 1
		case lexer.KUnlit:
			p.next()
			lit = 0
		case lexer.KRandom:
			p.next()
			lit = -1
		default:
			return p.errorf("expected lit, unlit, or random")
		}
		if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
			return err
		}
		p.pushMapChar(bytecode.MapCharOperand{Type: int8(typ), Lit: lit})
		return nil
	case lexer.KVariable:
		p.next()
		p.pushVar(t.Value.Str)
		return nil
	default:
		return p.errorf("expected map character")
	}
}

func whatMapChar(c byte) int16 {
	return terrain.WhatMapChar(c)
}

func (p *parser) parseMonsterOrVar() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KRandom:
		p.next()
		p.pushMonst(bytecode.MonsterWildcard())
		return nil
	case lexer.KLParen:
		p.next()
		ct, err := p.expect(lexer.KChar, "class character")
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		name, err := p.parseString()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
			return err
		}
		id, ok := names.LookupMonster(name, ct.Value.Ch)
		if !ok {
			id = -1
		}
		p.pushMonst(bytecode.MonstOperand{Class: ct.Value.Ch, Id: id})
		return nil
	case lexer.KChar:
		p.next()
		p.pushMonst(bytecode.MonstOperand{Class: t.Value.Ch, Id: -1})
		return nil
	case lexer.KVariable:
		p.next()
		p.pushVar(t.Value.Str)
		return nil
	default:
		return p.errorf("expected monster")
	}
}

func (p *parser) parseObjectOrVar() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KRandom:
		p.next()
		p.pushObj(bytecode.ObjectWildcard())
		return nil
	case lexer.KLParen:
		p.next()
		ct, err := p.expect(lexer.KChar, "class character")
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		name, err := p.parseString()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
			return err
		}
		id, ok := names.LookupObject(name, ct.Value.Ch)
		if !ok {
			id = -1
		}
		p.pushObj(bytecode.ObjOperand{Class: ct.Value.Ch, Id: id})
		return nil
	case lexer.KChar:
		p.next()
		p.pushObj(bytecode.ObjOperand{Class: t.Value.Ch, Id: -1})
		return nil
	case lexer.KVariable:
		p.next()
		p.pushVar(t.Value.Str)
		return nil
	default:
		return p.errorf("expected object")
	}
}

func (p *parser) parseSingleDirection() (int64, error) {
	switch p.peek().Value.Kind {
	case lexer.KNorth:
		p.next()
		return bytecode.DirNorth, nil
	case lexer.KSouth:
		p.next()
		return bytecode.DirSouth, nil
	case lexer.KEast:
		p.next()
		return bytecode.DirEast, nil
	case lexer.KWest:
		p.next()
		return bytecode.DirWest, nil
	case lexer.KRandom:
		p.next()
		return -1, nil
	default:
		return 0, p.errorf("expected direction")
	}
}

func (p *parser) parseDirection() (int64, error) {
	d, err := p.parseSingleDirection()
	if err != nil {
		return 0, err
	}
	for p.peek().Value.Kind == lexer.KPipe {
		p.next()
		d2, err := p.parseSingleDirection()
		if err != nil {
			return 0, err
		}
		d |= d2
	}
	return d, nil
}

func (p *parser) parseDoorState() (int64, error) {
	t := p.peek()
	if t.Value.Kind == lexer.KRandom {
		p.next()
		return -1, nil
	}
	if t.Value.Kind != lexer.KDoorState {
		return 0, p.errorf("expected door state")
	}
	p.next()
	switch t.Value.Str {
	case "open":
		return 1, nil
	case "closed":
		return 2, nil
	case "locked":
		return 4, nil
	case "nodoor":
		return 8, nil
	case "broken":
		return 16, nil
	case "secret":
		return 32, nil
	}
	return 0, p.errorf("unknown door state %q", t.Value.Str)
}

func (p *parser) parseUpOrDown() (int64, error) {
	switch p.peek().Value.Kind {
	case lexer.KUp:
		p.next()
		return 1, nil
	case lexer.KDown:
		p.next()
		return 0, nil
	default:
		return 0, p.errorf("expected up or down")
	}
}

func (p *parser) parseLitState() (int64, error) {
	switch p.peek().Value.Kind {
	case lexer.KLit:
		p.next()
		return 1, nil
	case lexer.KUnlit:
		p.next()
		return 0, nil
	case lexer.KRandom:
		p.next()
		return -1, nil
	default:
		return 0, p.errorf("expected lit, unlit, or random")
	}
}

func (p *parser) parseAltarAlignment() (int64, error) {
	t := p.peek()
	if t.Value.Kind == lexer.KRandom {
		p.next()
		return -1, nil
	}
	if t.Value.Kind != lexer.KAlignment {
		return 0, p.errorf("expected alignment")
	}
	p.next()
	switch t.Value.Str {
	case "noalign":
		return 0, nil
	case "law":
		return 1, nil
	case "neutral":
		return 0, nil
	case "chaos":
		return -1, nil
	case "coaligned":
		return 4, nil
	case "noncoaligned":
		return 5, nil
	}
	return 0, p.errorf("unknown alignment %q", t.Value.Str)
}

func (p *parser) parseAltarType() (int64, error) {
	t := p.peek()
	if t.Value.Kind != lexer.KAltarType {
		return 0, p.errorf("expected altar type")
	}
	p.next()
	switch t.Value.Str {
	case "altar":
		return 0, nil
	case "shrine":
		return 1, nil
	case "sanctum":
		return 2, nil
	}
	return 0, p.errorf("unknown altar type %q", t.Value.Str)
}

func (p *parser) parseCharOrRandom() (int64, error) {
	t := p.peek()
	if t.Value.Kind == lexer.KRandom {
		p.next()
		return -1, nil
	}
	if t.Value.Kind != lexer.KChar {
		return 0, p.errorf("expected character or random")
	}
	p.next()
	return int64(whatMapChar(t.Value.Ch)), nil
}

// parseBool parses a plain true/false token, with no random variant.
func (p *parser) parseBool() (bool, error) {
	switch p.peek().Value.Kind {
	case lexer.KBoolTrue:
		p.next()
		return true, nil
	case lexer.KBoolFalse:
		p.next()
		return false, nil
	default:
		return false, p.errorf("expected true/false")
	}
}

// parseIntegerOrRandom parses an integer literal or the random keyword,
// reporting random as -1.
func (p *parser) parseIntegerOrRandom() (int64, error) {
	if p.peek().Value.Kind == lexer.KRandom {
		p.next()
		return -1, nil
	}
	return p.parseInteger()
}

func (p *parser) parseBoolOrRandom() (int64, error) {
	switch p.peek().Value.Kind {
	case lexer.KRandom:
		p.next()
		return -1, nil
	case lexer.KBoolTrue, lexer.KLit:
		p.next()
		return 1, nil
	case lexer.KBoolFalse, lexer.KUnlit:
		p.next()
		return 0, nil
	default:
		return 0, p.errorf("expected boolean or random")
	}
}

func (p *parser) parseIntPair() (int64, int64, error) {
	if _, err := p.expect(lexer.KLParen, "'('"); err != nil {
		return 0, 0, err
	}
	a, err := p.parseInteger()
	if err != nil {
		return 0, 0, err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return 0, 0, err
	}
	b, err := p.parseInteger()
	if err != nil {
		return 0, 0, err
	}
	if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (p *parser) parseRoomAlignOrRandom() (int64, error) {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KLeft, lexer.KTop:
		p.next()
		return 1, nil
	case lexer.KHalfLeft:
		p.next()
		return 2, nil
	case lexer.KCenter:
		p.next()
		return 3, nil
	case lexer.KHalfRight:
		p.next()
		return 4, nil
	case lexer.KRight, lexer.KBottom:
		p.next()
		return 5, nil
	case lexer.KRandom:
		p.next()
		return -1, nil
	case lexer.KInteger:
		p.next()
		return t.Value.Int, nil
	default:
		return 0, p.errorf("expected alignment")
	}
}

func (p *parser) parsePairOrRandom() (int64, int64, error) {
	if p.peek().Value.Kind == lexer.KRandom {
		p.next()
		return -1, -1, nil
	}
	if _, err := p.expect(lexer.KLParen, "'('"); err != nil {
		return 0, 0, err
	}
	a, err := p.parseRoomAlignOrRandom()
	if err != nil {
		return 0, 0, err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return 0, 0, err
	}
	b, err := p.parseRoomAlignOrRandom()
	if err != nil {
		return 0, 0, err
	}
	if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
