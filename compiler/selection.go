package compiler

import (
	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/lexer"
)

// parseTerSelection parses a selection expression, composing multiple
// operands with '&' into SelAdd. Used wherever a DOOR/FOUNTAIN/SINK/
// POOL-style statement accepts a selection.
func (p *parser) parseTerSelection() error {
	if err := p.parseTerSelectionPrimary(); err != nil {
		return err
	}
	for p.peek().Value.Kind == lexer.KAmpersand {
		p.next()
		if err := p.parseTerSelectionPrimary(); err != nil {
			return err
		}
		p.emit(bytecode.OpSelAdd)
	}
	return nil
}

func (p *parser) parseTerSelectionPrimary() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KLParen:
		// A bare parenthesized coordinate, with no selection-builder
		// keyword following it, is a single-point selection.
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		p.emit(bytecode.OpSelPoint)
		return nil
	case lexer.KRect:
		p.next()
		r, _, err := p.parseRegionOrVar()
		if err != nil {
			return err
		}
		p.pushRegion(r)
		p.emit(bytecode.OpSelRect)
		return nil
	case lexer.KFillRect:
		p.next()
		r, _, err := p.parseRegionOrVar()
		if err != nil {
			return err
		}
		p.pushRegion(r)
		p.emit(bytecode.OpSelFillRect)
		return nil
	case lexer.KLine:
		p.next()
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		p.emit(bytecode.OpSelLine)
		return nil
	case lexer.KRandLine:
		p.next()
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		if err := p.parseMathExpr(); err != nil {
			return err
		}
		p.emit(bytecode.OpSelRndLine)
		return nil
	case lexer.KGrow:
		p.next()
		dir, err := p.parseOptionalGrowDir()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KLParen, "'('"); err != nil {
			return err
		}
		if err := p.parseTerSelection(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRParen, "')'"); err != nil {
			return err
		}
		p.pushInt(dir)
		p.emit(bytecode.OpSelGrow)
		return nil
	case lexer.KFloodFill:
		p.next()
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		p.emit(bytecode.OpSelFlood)
		return nil
	case lexer.KFilter:
		p.next()
		return p.parseFilterArgs()
	case lexer.KComplement:
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
		p.emit(bytecode.OpSelComplement)
		return nil
	case lexer.KEllipse:
		p.next()
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		if err := p.parseMathExpr(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		if err := p.parseMathExpr(); err != nil {
			return err
		}
		fill := int64(1)
		var err error
		if p.peek().Value.Kind == lexer.KComma {
			p.next()
			fill, err = p.parseInteger()
			if err != nil {
				return err
			}
		}
		p.pushInt(fill)
		p.emit(bytecode.OpSelEllipse)
		return nil
	case lexer.KCircle:
		p.next()
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		if err := p.parseMathExpr(); err != nil { // radius, used for both rx/ry
			return err
		}
		fill := int64(1)
		var err error
		if p.peek().Value.Kind == lexer.KComma {
			p.next()
			fill, err = p.parseInteger()
			if err != nil {
				return err
			}
		}
		// Grounded on des_parser.rs: circle duplicates the radius as both
		// rx and ry via an extra Copy before pushing fill and emitting
		// SelEllipse — a quirk distinct from ellipse's two explicit radii.
		p.emit(bytecode.OpCopy)
		p.pushInt(fill)
		p.emit(bytecode.OpSelEllipse)
		return nil
	case lexer.KGradient:
		p.next()
		gtype := int64(bytecode.GradientRadial)
		switch p.peek().Value.Kind {
		case lexer.KRadial:
			p.next()
		case lexer.KSquare:
			p.next()
			gtype = bytecode.GradientSquare
		default:
			return p.errorf("expected radial or square")
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		if err := p.parseMathExpr(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		limited := int64(0)
		var err error
		if p.peek().Value.Kind == lexer.KComma {
			p.next()
			limited, err = p.parseInteger()
			if err != nil {
				return err
			}
		}
		p.pushInt(limited)
		p.pushInt(gtype)
		p.emit(bytecode.OpSelGradient)
		return nil
	case lexer.KVariable:
		p.next()
		p.pushVar(t.Value.Str)
		return nil
	case lexer.KRandom:
		p.next()
		p.pushCoord(bytecode.RandomCoord())
		p.emit(bytecode.OpSelAdd)
		return nil
	default:
		return p.errorf("expected selection expression")
	}
}

func (p *parser) parseOptionalGrowDir() (int64, error) {
	switch p.peek().Value.Kind {
	case lexer.KNorth, lexer.KSouth, lexer.KEast, lexer.KWest:
		return p.parseDirection()
	default:
		return bytecode.DirAny, nil
	}
}

func (p *parser) parseFilterArgs() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KInteger, lexer.KPercent:
		pct := t.Value.Int
		p.next()
		if err := p.parseTerSelection(); err != nil {
			return err
		}
		p.pushInt(pct)
		p.pushInt(bytecode.SelFilterPercent)
		p.emit(bytecode.OpSelFilter)
		return nil
	case lexer.KChar:
		if err := p.parseMapCharOrVar(); err != nil {
			return err
		}
		if err := p.parseTerSelection(); err != nil {
			return err
		}
		p.pushInt(bytecode.SelFilterMapChar)
		p.emit(bytecode.OpSelFilter)
		return nil
	default:
		if err := p.parseTerSelection(); err != nil {
			return err
		}
		if err := p.parseTerSelection(); err != nil {
			return err
		}
		p.pushInt(bytecode.SelFilterSelection)
		p.emit(bytecode.OpSelFilter)
		return nil
	}
}

// parseTerSelectionAsCoord is the selection-form shortcut used by
// FOUNTAIN/SINK/POOL: a plain coordinate promoted to a one-point
// selection.
func (p *parser) parseTerSelectionAsCoord() error {
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	p.emit(bytecode.OpSelPoint)
	return nil
}

// parseTerrainSelection is TERRAIN's selection argument: unlike
// parseTerSelection it has no '&' composition and treats a bare
// coordinate (or LParen-wrapped coordinate) as an implicit SelPoint.
func (p *parser) parseTerrainSelection() error {
	switch p.peek().Value.Kind {
	case lexer.KRect, lexer.KFillRect, lexer.KLine, lexer.KRandLine, lexer.KGrow,
		lexer.KFloodFill, lexer.KFilter, lexer.KComplement, lexer.KEllipse,
		lexer.KCircle, lexer.KGradient:
		return p.parseTerSelectionPrimary()
	case lexer.KVariable:
		t := p.next()
		p.pushVar(t.Value.Str)
		return nil
	case lexer.KRandom:
		return p.parseTerSelectionAsCoord()
	default:
		return p.parseTerSelectionAsCoord()
	}
}
