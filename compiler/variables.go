package compiler

import (
	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/lexer"
)

// parseBlock parses statements until it sees a token that can only
// close the enclosing construct (RBrace, Eof, or a CASE/DEFAULT
// boundary inside a SWITCH body).
func (p *parser) parseBlock() error {
	for {
		switch p.peek().Value.Kind {
		case lexer.KRBrace, lexer.KEof, lexer.KCase, lexer.KDefault:
			return nil
		default:
			if err := p.parseBlockUnit(); err != nil {
				return err
			}
		}
	}
}

// parseBlockUnit parses exactly one statement-level unit: a control
// construct, a percent-gated statement, a variable assignment, or a
// plain producer statement. Shared by parseBlock's loop and the
// single statement a `[N%]:` wrapper gates.
func (p *parser) parseBlockUnit() error {
	switch p.peek().Value.Kind {
	case lexer.KBreak:
		p.next()
		idx := p.emitJumpPlaceholder()
		p.emit(bytecode.OpJmp)
		p.recordBreak(idx)
		return nil
	case lexer.KIf:
		return p.parseIf()
	case lexer.KFor:
		return p.parseFor()
	case lexer.KLoop:
		return p.parseLoop()
	case lexer.KSwitch:
		return p.parseSwitch()
	case lexer.KPercent:
		return p.parsePercentStatement()
	case lexer.KVariable:
		return p.parseVariableAssignment()
	default:
		return p.parseStatement()
	}
}

// declareVar records name's type in the current level's symbol table,
// first-write-wins: redeclaration with a different type is a parse
// error, matching the reference parser's single-pass type inference.
func (p *parser) declareVar(name string, typ varType, isArray bool) error {
	name = ensureDollar(name)
	if existing, ok := p.vars.Get(name); ok {
		if existing.typ != typ || existing.isArray != isArray {
			return p.errorf("variable %s redeclared with a different type", name)
		}
		return nil
	}
	p.vars.Put(name, varDef{typ: typ, isArray: isArray})
	return nil
}

// parseVariableAssignment handles `$name = <expr>` and `$name[n] = {
// <elem>, ... }` (typed array literal), inferring the element type
// from the first token of the right-hand side the way the reference
// parser does: no separate declaration statement exists in the
// grammar, the first assignment IS the declaration.
func (p *parser) parseVariableAssignment() error {
	nameTok := p.next() // Variable
	name := nameTok.Value.Str

	if p.peek().Value.Kind == lexer.KLBracket {
		p.next()
		size, err := p.parseInteger()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KRBracket, "']'"); err != nil {
			return err
		}
		if _, err := p.expect(lexer.KEquals, "'='"); err != nil {
			return err
		}
		return p.parseTypedArray(name, size)
	}

	if _, err := p.expect(lexer.KEquals, "'='"); err != nil {
		return err
	}

	t := p.peek()
	switch t.Value.Kind {
	case lexer.KLBrace:
		return p.parseTypedArray(name, -1)
	case lexer.KString:
		if err := p.parseStringExpr(); err != nil {
			return err
		}
		if err := p.declareVar(name, varString, false); err != nil {
			return err
		}
	case lexer.KLParen:
		// Ambiguous between coord/region/mapchar tuples; peek the
		// comma count to disambiguate the way the reference parser's
		// backtracking lookahead does.
		kind, err := p.classifyParenTuple()
		if err != nil {
			return err
		}
		switch kind {
		case varCoord:
			if err := p.parseCoordOrVar(); err != nil {
				return err
			}
			if err := p.declareVar(name, varCoord, false); err != nil {
				return err
			}
		case varRegion:
			r, _, err := p.parseRegionOrVar()
			if err != nil {
				return err
			}
			p.pushRegion(r)
			if err := p.declareVar(name, varRegion, false); err != nil {
				return err
			}
		default:
			if err := p.parseMapCharOrVar(); err != nil {
				return err
			}
			if err := p.declareVar(name, varMapChar, false); err != nil {
				return err
			}
		}
	case lexer.KSelection, lexer.KRect, lexer.KFillRect, lexer.KLine, lexer.KRandLine,
		lexer.KGrow, lexer.KFloodFill, lexer.KFilter, lexer.KComplement, lexer.KEllipse,
		lexer.KCircle, lexer.KGradient:
		if t.Value.Kind == lexer.KSelection {
			p.next()
		}
		if err := p.parseTerSelection(); err != nil {
			return err
		}
		if err := p.declareVar(name, varSel, false); err != nil {
			return err
		}
	default:
		if err := p.parseMathExpr(); err != nil {
			return err
		}
		if err := p.declareVar(name, varInt, false); err != nil {
			return err
		}
	}
	p.storeVar(name)
	return nil
}

// classifyParenTuple peeks past a '(' to count top-level commas: one
// comma is a Coord, three are a Region; used only when the value isn't
// already disambiguated by a leading keyword.
func (p *parser) classifyParenTuple() (varType, error) {
	depth := 0
	commas := 0
	for i := p.pos; ; i++ {
		tok := p.peekAbs(i)
		switch tok.Value.Kind {
		case lexer.KEof:
			return 0, p.errorf("unterminated tuple")
		case lexer.KLParen:
			depth++
		case lexer.KRParen:
			depth--
			if depth == 0 {
				switch commas {
				case 1:
					return varCoord, nil
				case 3:
					return varRegion, nil
				default:
					return varMapChar, nil
				}
			}
		case lexer.KComma:
			if depth == 1 {
				commas++
			}
		}
	}
}

func (p *parser) peekAbs(i int) lexer.Located[lexer.Token] {
	if i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

// parseTypedArray parses `{ elem, elem, ... }`, inferring the element
// type from the first element, pushing each element in source order,
// then the element count, the name, and a single VarInit.
func (p *parser) parseTypedArray(name string, size int64) error {
	if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
		return err
	}
	var typ varType
	first := true
	n := int64(0)
	for {
		if p.peek().Value.Kind == lexer.KRBrace {
			break
		}
		t := p.peek()
		var elemType varType
		switch t.Value.Kind {
		case lexer.KString:
			if err := p.parseStringExpr(); err != nil {
				return err
			}
			elemType = varString
		case lexer.KLParen:
			kind, err := p.classifyParenTuple()
			if err != nil {
				return err
			}
			switch kind {
			case varCoord:
				if err := p.parseCoordOrVar(); err != nil {
					return err
				}
			case varRegion:
				r, _, err := p.parseRegionOrVar()
				if err != nil {
					return err
				}
				p.pushRegion(r)
			default:
				if err := p.parseMapCharOrVar(); err != nil {
					return err
				}
			}
			elemType = kind
		default:
			if err := p.parseMathExpr(); err != nil {
				return err
			}
			elemType = varInt
		}
		if first {
			typ = elemType
			first = false
		}
		n++
		if p.peek().Value.Kind == lexer.KComma {
			p.next()
		}
	}
	if _, err := p.expect(lexer.KRBrace, "'}'"); err != nil {
		return err
	}
	if first {
		typ = varInt
	}
	if err := p.declareVar(name, typ, true); err != nil {
		return err
	}
	_ = size // declared capacity; the ABI only carries the element count
	p.storeArray(name, n)
	return nil
}
