package compiler

import (
	"github.com/nhdc/desc/bytecode"
	"github.com/nhdc/desc/lexer"
	"github.com/nhdc/desc/names"
	"github.com/nhdc/desc/terrain"
)

// parseMaze handles `MAZE: "name", fill`. The fill character is run
// through what_map_char twice — once here, once again at InitLevel
// emission — reproducing the reference compiler's double-conversion
// bug verbatim; level sources may depend on the resulting stream.
func (p *parser) parseMaze() error {
	p.finishLevel()
	p.next() // MAZE
	if _, err := p.expect(lexer.KColon, "':'"); err != nil {
		return err
	}
	name, err := p.parseString()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}

	var filling int64
	switch t := p.peek(); t.Value.Kind {
	case lexer.KRandom:
		p.next()
		filling = 2
	case lexer.KChar:
		p.next()
		once := terrain.WhatMapChar(t.Value.Ch)
		twice := terrain.WhatMapChar(byte(once))
		filling = int64(twice)
	default:
		return p.errorf("expected fill character or random")
	}

	p.levelName = name
	p.pushInt(bytecode.LvlInitMazeGrid)
	p.pushInt(filling)
	p.pushInt(0) // smoothed
	p.pushInt(0) // lit
	p.pushInt(0) // joined
	p.pushInt(0) // hushed
	p.pushInt(0) // bg
	p.pushInt(0) // fg
	p.emit(bytecode.OpInitLevel)
	p.pushInt(bytecode.FlagMazeLevel)
	p.emit(bytecode.OpLevelFlags)
	return p.parseMandatoryFlags()
}

// parseLevelDef handles `LEVEL: "name"`.
func (p *parser) parseLevelDef() error {
	p.finishLevel()
	p.next() // LEVEL
	if _, err := p.expect(lexer.KColon, "':'"); err != nil {
		return err
	}
	name, err := p.parseString()
	if err != nil {
		return err
	}
	p.levelName = name
	return p.parseMandatoryFlags()
}

var flagBits = map[string]int64{
	"noteleport":    bytecode.FlagNoTeleport,
	"hardfloor":     bytecode.FlagHardFloor,
	"nommap":        bytecode.FlagNoMMap,
	"shortsighted":  bytecode.FlagShortSighted,
	"arboreal":      bytecode.FlagArboreal,
	"mazelevel":     bytecode.FlagMazeLevel,
	"premapped":     bytecode.FlagPremapped,
	"shroud":        bytecode.FlagShroud,
	"graveyard":     bytecode.FlagGraveyard,
	"icedpools":     bytecode.FlagIcedPools,
	"solidify":      bytecode.FlagSolidify,
	"corrmaze":      bytecode.FlagCorrMaze,
	"inaccessibles": bytecode.FlagCheckInaccessibles,
}

// parseMandatoryFlags emits the level's LevelFlags instruction: either
// the user-supplied `FLAGS:` list OR-ed together, or a bare zero. This
// always runs once per level header, even when FLAGS is absent.
func (p *parser) parseMandatoryFlags() error {
	if p.peek().Value.Kind != lexer.KFlags {
		p.pushInt(0)
		p.emit(bytecode.OpLevelFlags)
		return nil
	}
	p.next()
	if _, err := p.expect(lexer.KColon, "':'"); err != nil {
		return err
	}
	var bits int64
	for {
		t := p.peek()
		if t.Value.Kind != lexer.KFlagType {
			return p.errorf("unknown flag")
		}
		p.next()
		b, ok := flagBits[t.Value.Str]
		if !ok {
			return p.errorf("unknown flag %q", t.Value.Str)
		}
		bits |= b
		if p.peek().Value.Kind != lexer.KComma {
			break
		}
		p.next()
	}
	p.pushInt(bits)
	p.emit(bytecode.OpLevelFlags)
	return nil
}

// parseStatement dispatches on the ~35 statement keywords.
func (p *parser) parseStatement() error {
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KFlags:
		return p.parseMandatoryFlags()
	case lexer.KGeometry:
		return p.parseGeometry()
	case lexer.KNomap:
		return p.parseNomap()
	case lexer.KInitMap:
		return p.parseInitMap()
	case lexer.KMap:
		return p.parseMapStatement()
	case lexer.KMessage:
		return p.parseMessage()
	case lexer.KMonster:
		return p.parseMonster()
	case lexer.KObject, lexer.KContainer:
		return p.parseObject(t.Value.Kind == lexer.KContainer)
	case lexer.KTrap:
		return p.parseTrap()
	case lexer.KDoor:
		return p.parseDoor()
	case lexer.KRoomDoor:
		return p.parseRoomDoor()
	case lexer.KDrawbridge:
		return p.parseDrawbridge()
	case lexer.KFountain:
		return p.parseFountainSinkPool(bytecode.OpFountain)
	case lexer.KSink:
		return p.parseFountainSinkPool(bytecode.OpSink)
	case lexer.KPool:
		return p.parseFountainSinkPool(bytecode.OpPool)
	case lexer.KLadder:
		return p.parseLadder()
	case lexer.KStair:
		return p.parseStair()
	case lexer.KAltar:
		return p.parseAltar()
	case lexer.KPortal:
		return p.parseLevRegion(bytecode.LRPortal)
	case lexer.KTeleportRegion:
		return p.parseTeleportRegion()
	case lexer.KBranch:
		return p.parseLevRegion(bytecode.LRBranch)
	case lexer.KGold:
		return p.parseGold()
	case lexer.KEngraving:
		return p.parseEngraving()
	case lexer.KGrave:
		return p.parseGrave()
	case lexer.KMazeWalk:
		return p.parseMazeWalk()
	case lexer.KWallify:
		return p.parseWallify()
	case lexer.KMineralize:
		return p.parseMineralize()
	case lexer.KNonDiggable:
		return p.parseNonDiggable()
	case lexer.KNonPasswall:
		return p.parseNonPasswall()
	case lexer.KTerrain:
		return p.parseTerrain()
	case lexer.KReplaceTerrain:
		return p.parseReplaceTerrain()
	case lexer.KRegion:
		return p.parseRegionStatement()
	case lexer.KRoom:
		return p.parseRoom(false)
	case lexer.KSubroom:
		return p.parseRoom(true)
	case lexer.KCorridor, lexer.KRandomCorridors:
		return p.parseCorridor()
	case lexer.KExit:
		p.next()
		p.emit(bytecode.OpExit)
		return nil
	case lexer.KShuffle:
		return p.parseShuffle()
	case lexer.KFunction:
		return p.parseFunction()
	case lexer.KRBrace:
		return p.parseContainerClose()
	default:
		return p.errorf("unexpected token at statement position")
	}
}

func (p *parser) expectColon() error {
	_, err := p.expect(lexer.KColon, "':'")
	return err
}

// parseGeometry has no consuming opcode of its own: it pushes the
// alignment coordinate, a "has geometry" marker, and the room fill
// value (always 1, since C's roomfill production is reset to 1 before
// every read) and leaves them dead on the stack, matching the three
// pushes des_parser.rs emits for GEOMETRY.
func (p *parser) parseGeometry() error {
	p.next() // GEOMETRY
	if err := p.expectColon(); err != nil {
		return err
	}
	x, err := p.parseRoomAlignOrRandom()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	y, err := p.parseRoomAlignOrRandom()
	if err != nil {
		return err
	}
	p.roomfill = 1
	p.pushCoord(bytecode.CoordOperand{X: int8(x), Y: int8(y)})
	p.pushInt(1) // has geometry
	p.pushInt(p.roomfill)
	return nil
}

// parseNomap emits the same Map opcode a real MAP block would, but
// with the C "no-map" marker operands: a zero coord, not-has-geometry,
// the nomap marker, an empty row string, and zero height/width.
func (p *parser) parseNomap() error {
	p.next()
	p.pushCoord(bytecode.CoordOperand{})
	p.pushInt(0) // not has geometry
	p.pushInt(1) // nomap marker
	p.pushStr("")
	p.pushInt(0)
	p.pushInt(0)
	p.emit(bytecode.OpMap)
	return nil
}

// parseInitMap handles `INIT_MAP: mazegrid, ...` / `solidfill, ...` /
// `mines, ...` / `rogue`. The "mines" variant's push order follows the
// parse order used throughout this package: fg, bg, smoothed, joined,
// lit, walled (see DESIGN.md Open Question decision 2).
func (p *parser) parseInitMap() error {
	p.next() // INIT_MAP
	if err := p.expectColon(); err != nil {
		return err
	}
	t := p.peek()
	switch t.Value.Kind {
	case lexer.KSolidFill:
		p.next()
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		fg, err := p.parseCharOrRandom()
		if err != nil {
			return err
		}
		p.pushInt(bytecode.LvlInitSolidFill)
		p.pushInt(fg)
		p.emit(bytecode.OpInitLevel)
		return nil
	case lexer.KMazeGrid:
		p.next()
		p.pushInt(bytecode.LvlInitMazeGrid)
		p.emit(bytecode.OpInitLevel)
		return nil
	case lexer.KMines:
		p.next()
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		fg, err := p.parseCharOrRandom()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		bg, err := p.parseCharOrRandom()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		smoothed, err := p.parseBoolOrRandom()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		joined, err := p.parseBoolOrRandom()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		lit, err := p.parseBoolOrRandom()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		walled, err := p.parseBoolOrRandom()
		if err != nil {
			return err
		}
		p.pushInt(bytecode.LvlInitMines)
		p.pushInt(fg)
		p.pushInt(bg)
		p.pushInt(smoothed)
		p.pushInt(joined)
		p.pushInt(lit)
		p.pushInt(walled)
		p.emit(bytecode.OpInitLevel)
		return nil
	case lexer.KRogueLev:
		p.next()
		p.pushInt(bytecode.LvlInitRogue)
		p.emit(bytecode.OpInitLevel)
		return nil
	default:
		return p.errorf("unknown init_map style")
	}
}

// parseMapStatement handles a bare `MAP ... ENDMAP` block: the lexer
// already captured its raw payload as a single MapData token.
func (p *parser) parseMapStatement() error {
	p.next() // Map
	data, err := p.expect(lexer.KMapData, "map data")
	if err != nil {
		return err
	}
	rows, height, width := terrain.ScanMap(data.Value.Str)
	p.pushStr(string(rows))
	p.pushInt(int64(height))
	p.pushInt(int64(width))
	p.emit(bytecode.OpMap)
	return nil
}

func (p *parser) parseMessage() error {
	p.next() // MESSAGE
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseStringExpr(); err != nil {
		return err
	}
	p.emit(bytecode.OpMessage)
	return nil
}

// parseMonster handles `MONSTER: spec, coord [, modifiers...]`. The
// modifier chain terminates with MonVarEnd, followed by the modifier
// count, per the scenario in the round-trip tests.
func (p *parser) parseMonster() error {
	p.next() // MONSTER
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseMonsterOrVar(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	count, err := p.parseMonsterModifiers()
	if err != nil {
		return err
	}
	p.pushInt(bytecode.MonVarEnd)
	p.pushInt(count)
	p.emit(bytecode.OpMonster)
	return nil
}

func (p *parser) parseMonsterModifiers() (int64, error) {
	var count int64
	for p.peek().Value.Kind == lexer.KComma {
		p.next()
		t := p.peek()
		switch t.Value.Kind {
		case lexer.KName:
			p.next()
			if err := p.expectColon(); err != nil {
				return 0, err
			}
			if err := p.parseStringExpr(); err != nil {
				return 0, err
			}
			p.pushInt(bytecode.MonVarName)
			count++
		case lexer.KPeaceful:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarPeaceful)
			count++
		case lexer.KHostile:
			p.next()
			p.pushInt(0)
			p.pushInt(bytecode.MonVarPeaceful)
			count++
		case lexer.KAsleep:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarAsleep)
			count++
		case lexer.KAwake:
			p.next()
			p.pushInt(0)
			p.pushInt(bytecode.MonVarAsleep)
			count++
		case lexer.KFemale:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarFemale)
			count++
		case lexer.KInvisible:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarInvis)
			count++
		case lexer.KCancelled:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarCancel)
			count++
		case lexer.KRevived:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarRevived)
			count++
		case lexer.KAvenge:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarAvenge)
			count++
		case lexer.KFleeing:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarFleeing)
			count++
		case lexer.KBlinded:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarBlinded)
			count++
		case lexer.KParalyzed:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarParalyzed)
			count++
		case lexer.KStunned:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarStunned)
			count++
		case lexer.KConfused:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.MonVarConfused)
			count++
		case lexer.KSeenTraps:
			p.next()
			if err := p.expectColon(); err != nil {
				return 0, err
			}
			v, err := p.parseInteger()
			if err != nil {
				return 0, err
			}
			p.pushInt(v)
			p.pushInt(bytecode.MonVarSeenTraps)
			count++
		case lexer.KAlignReg:
			p.next()
			if err := p.expectColon(); err != nil {
				return 0, err
			}
			v, err := p.parseAltarAlignment()
			if err != nil {
				return 0, err
			}
			p.pushInt(v)
			p.pushInt(bytecode.MonVarAlign)
			count++
		default:
			// Forgiving modifier-chain terminator (Open Question b):
			// an unrecognized token at a modifier boundary ends the
			// chain instead of erroring. Rewind the consumed comma.
			p.pos--
			return count, nil
		}
	}
	return count, nil
}

func (p *parser) parseObject(isContainer bool) error {
	p.next() // OBJECT or CONTAINER
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseObjectOrVar(); err != nil {
		return err
	}

	hasCoord := false
	if p.peek().Value.Kind == lexer.KComma {
		p.next()
		if err := p.parseCoordOrVar(); err != nil {
			return err
		}
		hasCoord = true
	}
	if !hasCoord {
		p.pushCoord(bytecode.RandomCoord())
	}

	count, err := p.parseObjectModifiers()
	if err != nil {
		return err
	}
	p.pushInt(bytecode.ObjVarEnd)

	var countBits int64
	if p.containerDepth > 0 {
		countBits |= bytecode.ObjCountInsideCtr
	}
	if isContainer {
		countBits |= bytecode.ObjCountContainer
	}
	p.pushInt(count)
	p.pushInt(countBits)
	p.emit(bytecode.OpObject)

	if isContainer {
		if _, err := p.expect(lexer.KLBrace, "'{'"); err != nil {
			return err
		}
		p.containerDepth++
	}
	return nil
}

func (p *parser) parseContainerClose() error {
	p.next() // '}'
	if p.containerDepth == 0 {
		return p.errorf("unmatched '}'")
	}
	p.containerDepth--
	p.emit(bytecode.OpPopContainer)
	return nil
}

func (p *parser) parseObjectModifiers() (int64, error) {
	var count int64
	for p.peek().Value.Kind == lexer.KComma {
		p.next()
		t := p.peek()
		switch t.Value.Kind {
		case lexer.KName:
			p.next()
			if err := p.expectColon(); err != nil {
				return 0, err
			}
			if err := p.parseStringExpr(); err != nil {
				return 0, err
			}
			p.pushInt(bytecode.ObjVarName)
			count++
		case lexer.KQuantity:
			p.next()
			if err := p.expectColon(); err != nil {
				return 0, err
			}
			if err := p.parseMathExpr(); err != nil {
				return 0, err
			}
			p.pushInt(bytecode.ObjVarQuan)
			count++
		case lexer.KBuried:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.ObjVarBuried)
			count++
		case lexer.KEroded:
			p.next()
			if err := p.expectColon(); err != nil {
				return 0, err
			}
			v, err := p.parseInteger()
			if err != nil {
				return 0, err
			}
			p.pushInt(v)
			p.pushInt(bytecode.ObjVarEroded)
			count++
		case lexer.KRecharged:
			p.next()
			if err := p.expectColon(); err != nil {
				return 0, err
			}
			v, err := p.parseInteger()
			if err != nil {
				return 0, err
			}
			p.pushInt(v)
			p.pushInt(bytecode.ObjVarRecharged)
			count++
		case lexer.KInvisible:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.ObjVarInvis)
			count++
		case lexer.KGreased:
			p.next()
			p.pushInt(1)
			p.pushInt(bytecode.ObjVarGreased)
			count++
		default:
			p.pos--
			return count, nil
		}
	}
	return count, nil
}

func (p *parser) parseTrap() error {
	p.next() // TRAP
	if err := p.expectColon(); err != nil {
		return err
	}
	name, err := p.parseString()
	if err != nil {
		return err
	}
	code, ok := names.LookupTrap(name)
	if !ok {
		code = -1
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	p.pushInt(code)
	p.emit(bytecode.OpTrap)
	return nil
}

// parseDoor's target is a full selection expression, not a bare coord:
// the stack order is the selection, then the door state.
func (p *parser) parseDoor() error {
	p.next() // DOOR
	if err := p.expectColon(); err != nil {
		return err
	}
	state, err := p.parseDoorState()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	if err := p.parseTerSelection(); err != nil {
		return err
	}
	p.pushInt(state)
	p.emit(bytecode.OpDoor)
	return nil
}

// parseRoomDoor's fields are secret(bool), state, wall, pos, with pos a
// single scalar (an integer percentage/index along the wall, or
// random) rather than a coordinate pair. Push order is pos, state,
// secret, wall.
func (p *parser) parseRoomDoor() error {
	p.next() // ROOMDOOR
	if err := p.expectColon(); err != nil {
		return err
	}
	secret, err := p.parseBool()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	state, err := p.parseDoorState()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	wall, err := p.parseDirection()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	pos, err := p.parseIntegerOrRandom()
	if err != nil {
		return err
	}
	p.pushInt(pos)
	p.pushInt(state)
	var secretVal int64
	if secret {
		secretVal = 1
	}
	p.pushInt(secretVal)
	p.pushInt(wall)
	p.emit(bytecode.OpRoomDoor)
	return nil
}

// parseDrawbridge normalizes the raw door state into C's 3-way
// open(1)/closed(0)/random(-1) encoding and the raw direction bit into
// a 0..3 drawbridge direction code, pushing state before db_dir.
func (p *parser) parseDrawbridge() error {
	p.next() // DRAWBRIDGE
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	dir, err := p.parseDirection()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	rawState, err := p.parseDoorState()
	if err != nil {
		return err
	}
	var state int64
	switch rawState {
	case 1:
		state = 1 // open
	case 2:
		state = 0 // closed
	case -1:
		state = -1 // random
	default:
		state = 0
	}
	p.pushInt(state)
	p.pushInt(dirToDB(dir))
	p.emit(bytecode.OpDrawbridge)
	return nil
}

// dirToDB normalizes a single compass-bit direction into the
// drawbridge's 0..3 direction code.
func dirToDB(dir int64) int64 {
	switch dir {
	case bytecode.DirNorth:
		return bytecode.DBNorth
	case bytecode.DirSouth:
		return bytecode.DBSouth
	case bytecode.DirEast:
		return bytecode.DBEast
	case bytecode.DirWest:
		return bytecode.DBWest
	default:
		return -1
	}
}

func (p *parser) parseFountainSinkPool(op bytecode.Opcode) error {
	p.next()
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseTerSelectionAsCoord(); err != nil {
		return err
	}
	p.emit(op)
	return nil
}

func (p *parser) parseLadder() error {
	p.next() // LADDER
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	dir, err := p.parseUpOrDown()
	if err != nil {
		return err
	}
	p.pushInt(dir)
	p.emit(bytecode.OpLadder)
	return nil
}

func (p *parser) parseStair() error {
	p.next() // STAIR
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	dir, err := p.parseUpOrDown()
	if err != nil {
		return err
	}
	p.pushInt(dir)
	p.emit(bytecode.OpStair)
	return nil
}

func (p *parser) parseAltar() error {
	p.next() // ALTAR
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	align, err := p.parseAltarAlignment()
	if err != nil {
		return err
	}
	atype := int64(0)
	if p.peek().Value.Kind == lexer.KComma {
		p.next()
		atype, err = p.parseAltarType()
		if err != nil {
			return err
		}
	}
	p.pushInt(align)
	p.pushInt(atype)
	p.emit(bytecode.OpAltar)
	return nil
}

// parseLevRegion handles PORTAL/BRANCH, both of which address another
// level's entry region, sharing push order with parseTeleportRegion.
func (p *parser) parseLevRegion(subtype int64) error {
	p.next()
	if err := p.expectColon(); err != nil {
		return err
	}
	x1, y1, err := p.parseIntPair()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	x2, y2, err := p.parseIntPair()
	if err != nil {
		return err
	}
	p.pushInt(x1)
	p.pushInt(y1)
	p.pushInt(x2)
	p.pushInt(y2)
	p.pushInt(subtype)
	p.emit(bytecode.OpLevRegion)
	return nil
}

func (p *parser) parseTeleportRegion() error {
	p.next() // TELEPORT_REGION
	if err := p.expectColon(); err != nil {
		return err
	}
	r, _, err := p.parseRegionOrVar()
	if err != nil {
		return err
	}
	subtype := int64(bytecode.LRTele)
	if p.peek().Value.Kind == lexer.KComma {
		p.next()
		switch p.peek().Value.Kind {
		case lexer.KUp:
			p.next()
			subtype = bytecode.LRTeleUp
		case lexer.KDown:
			p.next()
			subtype = bytecode.LRTeleDown
		default:
			return p.errorf("expected up or down")
		}
	}
	p.pushRegion(r)
	p.pushInt(subtype)
	p.emit(bytecode.OpLevRegion)
	return nil
}

func (p *parser) parseGold() error {
	p.next() // GOLD
	if err := p.expectColon(); err != nil {
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
	p.emit(bytecode.OpGold)
	return nil
}

func (p *parser) parseEngraving() error {
	p.next() // ENGRAVING
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	t := p.peek()
	if t.Value.Kind != lexer.KEngravingType {
		return p.errorf("expected engraving type")
	}
	p.next()
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	if err := p.parseStringExpr(); err != nil {
		return err
	}
	p.pushInt(engravingCode(t.Value.Str))
	p.emit(bytecode.OpEngraving)
	return nil
}

func engravingCode(s string) int64 {
	switch s {
	case "dust":
		return 0
	case "engrave":
		return 1
	case "burn":
		return 2
	case "mark":
		return 3
	case "blood":
		return 4
	default:
		return -1
	}
}

func (p *parser) parseGrave() error {
	p.next() // GRAVE
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	hasMsg := false
	if p.peek().Value.Kind == lexer.KComma {
		p.next()
		if err := p.parseStringExpr(); err != nil {
			return err
		}
		hasMsg = true
	}
	if !hasMsg {
		p.pushStr("")
	}
	p.emit(bytecode.OpGrave)
	return nil
}

func (p *parser) parseMazeWalk() error {
	p.next() // MAZEWALK
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	dir, err := p.parseSingleDirection()
	if err != nil {
		return err
	}
	lit := int64(-1)
	if p.peek().Value.Kind == lexer.KComma {
		p.next()
		lit, err = p.parseLitState()
		if err != nil {
			return err
		}
	}
	p.pushInt(dir)
	p.pushInt(lit)
	p.emit(bytecode.OpMazeWalk)
	return nil
}

func (p *parser) parseWallify() error {
	p.next()
	p.emit(bytecode.OpWallify)
	return nil
}

func (p *parser) parseMineralize() error {
	p.next() // MINERALIZE
	sq := int64(-1)
	gq := int64(-1)
	gem := int64(-1)
	if p.peek().Value.Kind == lexer.KColon {
		p.next()
		var err error
		sq, err = p.parseInteger()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		gq, err = p.parseInteger()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
		gem, err = p.parseInteger()
		if err != nil {
			return err
		}
	}
	p.pushInt(sq)
	p.pushInt(gq)
	p.pushInt(gem)
	p.emit(bytecode.OpMineralize)
	return nil
}

func (p *parser) parseNonDiggable() error {
	p.next() // NON_DIGGABLE
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseTerrainSelection(); err != nil {
		return err
	}
	p.emit(bytecode.OpNonDiggable)
	return nil
}

func (p *parser) parseNonPasswall() error {
	p.next() // NON_PASSWALL
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseTerrainSelection(); err != nil {
		return err
	}
	p.emit(bytecode.OpNonPasswall)
	return nil
}

func (p *parser) parseTerrain() error {
	p.next() // TERRAIN
	if err := p.expectColon(); err != nil {
		return err
	}
	if err := p.parseTerrainSelection(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	if err := p.parseMapCharOrVar(); err != nil {
		return err
	}
	p.emit(bytecode.OpTerrain)
	return nil
}

func (p *parser) parseReplaceTerrain() error {
	p.next() // REPLACE_TERRAIN
	if err := p.expectColon(); err != nil {
		return err
	}
	r, _, err := p.parseRegionOrVar()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	if err := p.parseMapCharOrVar(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	if err := p.parseMapCharOrVar(); err != nil {
		return err
	}
	p.pushRegion(r)
	p.emit(bytecode.OpReplaceTerrain)
	return nil
}

func (p *parser) parseRegionStatement() error {
	p.next() // REGION
	if err := p.expectColon(); err != nil {
		return err
	}
	r, _, err := p.parseRegionOrVar()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	lit, err := p.parseLitState()
	if err != nil {
		return err
	}
	rtype := int64(0)
	if p.peek().Value.Kind == lexer.KComma {
		p.next()
		rtype, err = roomTypeToInt(p)
		if err != nil {
			return err
		}
	}
	p.pushRegion(r)
	p.pushInt(lit)
	p.pushInt(rtype)
	p.emit(bytecode.OpRegion)
	return nil
}

// roomTypeToInt resolves a room-type keyword. Code 1 is intentionally
// absent from the mapping, a gap reproduced verbatim from the
// reference table (see DESIGN.md Open Question decision 3).
func roomTypeToInt(p *parser) (int64, error) {
	t := p.peek()
	if t.Value.Kind != lexer.KString {
		return 0, p.errorf("expected room type")
	}
	p.next()
	switch t.Value.Str {
	case "ordinary":
		return 0, nil
	case "throne":
		return 2, nil
	case "delphi":
		return 3, nil
	case "temple":
		return 4, nil
	case "beehive":
		return 5, nil
	case "morgue":
		return 7, nil
	case "leprehall":
		return 10, nil
	case "cocknest":
		return 11, nil
	case "shop", "shopnochance":
		return 13, nil
	case "zoo":
		return 15, nil
	case "swamp":
		return 16, nil
	case "court":
		return 18, nil
	case "anthole":
		return 21, nil
	case "barracks":
		return 22, nil
	default:
		return 0, p.errorf("unknown room type %q", t.Value.Str)
	}
}

func (p *parser) parseRoom(isSub bool) error {
	p.next() // ROOM or SUBROOM
	if err := p.expectColon(); err != nil {
		return err
	}
	rtype := int64(0)
	if p.peek().Value.Kind == lexer.KString {
		var err error
		rtype, err = roomTypeToInt(p)
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.KComma, "','"); err != nil {
			return err
		}
	}
	lit, err := p.parseLitState()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	w, h, err := p.parseIntPair()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	xalign, yalign, err := p.parsePairOrRandom()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	if err := p.parseCoordOrVar(); err != nil {
		return err
	}

	p.pushInt(rtype)
	p.pushInt(lit)
	p.pushInt(w)
	p.pushInt(h)
	p.pushInt(xalign)
	p.pushInt(yalign)
	if isSub {
		p.emit(bytecode.OpSubroom)
	} else {
		p.emit(bytecode.OpRoom)
	}
	return nil
}

func (p *parser) parseCorridor() error {
	random := p.peek().Value.Kind == lexer.KRandomCorridors
	p.next()
	if random {
		if err := p.expectColon(); err != nil {
			return err
		}
		n, err := p.parseInteger()
		if err != nil {
			return err
		}
		p.pushInt(n)
		p.pushInt(-1)
		p.emit(bytecode.OpCorridor)
		return nil
	}
	if err := p.expectColon(); err != nil {
		return err
	}
	srcRoom, err := p.parseInteger()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	srcDoor, err := p.parseInteger()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	dstRoom, err := p.parseInteger()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KComma, "','"); err != nil {
		return err
	}
	dstDoor, err := p.parseInteger()
	if err != nil {
		return err
	}
	p.pushInt(srcRoom)
	p.pushInt(srcDoor)
	p.pushInt(dstRoom)
	p.pushInt(dstDoor)
	p.emit(bytecode.OpCorridor)
	return nil
}

func (p *parser) parseShuffle() error {
	p.next() // SHUFFLE
	if err := p.expectColon(); err != nil {
		return err
	}
	t, err := p.expect(lexer.KVariable, "variable")
	if err != nil {
		return err
	}
	p.pushVar(t.Value.Str)
	p.emit(bytecode.OpShuffleArray)
	return nil
}

// parseFunction parses FUNCTION bodies inline with the call site: a
// resolved Open Question (see DESIGN.md decision 1) — function call
// opcodes exist (Call/Return/FramePush/FramePop) but this grammar has
// no standard content exercising them, so the body is simply inlined.
func (p *parser) parseFunction() error {
	p.next() // FUNCTION
	if err := p.expectColon(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.KString, "function name"); err != nil {
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
	return nil
}
