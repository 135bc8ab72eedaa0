// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bytecode defines the instruction set and operand ABI shared
// by the compiler and the decoder: the Opcode enumeration, the Operand
// tagged union, the flat Instruction/Level types, and the 64-bit
// packing functions for Coord/Region/MapChar/Monst/Obj operands.
//
// Supported opcodes, grouped the way the reference grammar groups them:
//
//	group      opcodes
//	producers  Message Monster Object Engraving Room Subroom Door Stair
//	           Ladder Altar Fountain Sink Pool Trap Gold Corridor
//	           LevRegion Drawbridge MazeWalk NonDiggable NonPasswall
//	           Wallify Map RoomDoor Region Mineralize Terrain
//	           ReplaceTerrain Exit EndRoom PopContainer EndMonInvent
//	           Grave InitLevel LevelFlags VarInit ShuffleArray Dice
//	stack/math Push Pop Rn2 Dec Inc MathAdd MathSub MathMul MathDiv
//	           MathMod MathSign Copy Cmp
//	control    Jmp Jl Jle Jg Jge Je Jne FramePush FramePop Call Return
//	selection  SelAdd SelPoint SelRect SelFillRect SelLine SelRndLine
//	           SelGrow SelFlood SelRndCoord SelEllipse SelFilter
//	           SelGradient SelComplement
//
// Every instruction carries at most one operand; only Push carries an
// operand in the binary form (see the decoder package).
package bytecode

import "fmt"

// Opcode is a single bytecode instruction. The numeric values match the
// reference compiler's ABI exactly and MUST NOT be renumbered.
type Opcode uint8

const (
	OpNull Opcode = iota
	OpMessage
	OpMonster
	OpObject
	OpEngraving
	OpRoom
	OpSubroom
	OpDoor
	OpStair
	OpLadder
	OpAltar
	OpFountain
	OpSink
	OpPool
	OpTrap
	OpGold
	OpCorridor
	OpLevRegion
	OpDrawbridge
	OpMazeWalk
	OpNonDiggable
	OpNonPasswall
	OpWallify
	OpMap
	OpRoomDoor
	OpRegion
	OpMineralize
	OpCmp
	OpJmp
	OpJl
	OpJle
	OpJg
	OpJge
	OpJe
	OpJne
	OpTerrain
	OpReplaceTerrain
	OpExit
	OpEndRoom
	OpPopContainer
	OpPush
	OpPop
	OpRn2
	OpDec
	OpInc
	OpMathAdd
	OpMathSub
	OpMathMul
	OpMathDiv
	OpMathMod
	OpMathSign
	OpCopy
	OpEndMonInvent
	OpGrave
	OpFramePush
	OpFramePop
	OpCall
	OpReturn
	OpInitLevel
	OpLevelFlags
	OpVarInit
	OpShuffleArray
	OpDice
	OpSelAdd
	OpSelPoint
	OpSelRect
	OpSelFillRect
	OpSelLine
	OpSelRndLine
	OpSelGrow
	OpSelFlood
	OpSelRndCoord
	OpSelEllipse
	OpSelFilter
	OpSelGradient
	OpSelComplement
)

var opcodeNames = [...]string{
	OpNull:           "null",
	OpMessage:        "message",
	OpMonster:        "monster",
	OpObject:         "object",
	OpEngraving:      "engraving",
	OpRoom:           "room",
	OpSubroom:        "subroom",
	OpDoor:           "door",
	OpStair:          "stair",
	OpLadder:         "ladder",
	OpAltar:          "altar",
	OpFountain:       "fountain",
	OpSink:           "sink",
	OpPool:           "pool",
	OpTrap:           "trap",
	OpGold:           "gold",
	OpCorridor:       "corridor",
	OpLevRegion:      "lev_region",
	OpDrawbridge:     "drawbridge",
	OpMazeWalk:       "mazewalk",
	OpNonDiggable:    "non_diggable",
	OpNonPasswall:    "non_passwall",
	OpWallify:        "wallify",
	OpMap:            "map",
	OpRoomDoor:       "room_door",
	OpRegion:         "region",
	OpMineralize:     "mineralize",
	OpCmp:            "cmp",
	OpJmp:            "jmp",
	OpJl:              "jl",
	OpJle:             "jle",
	OpJg:              "jg",
	OpJge:             "jge",
	OpJe:              "je",
	OpJne:             "jne",
	OpTerrain:        "terrain",
	OpReplaceTerrain: "replace_terrain",
	OpExit:           "exit",
	OpEndRoom:        "end_room",
	OpPopContainer:   "pop_container",
	OpPush:           "push",
	OpPop:            "pop",
	OpRn2:            "rn2",
	OpDec:            "dec",
	OpInc:            "inc",
	OpMathAdd:        "math_add",
	OpMathSub:        "math_sub",
	OpMathMul:        "math_mul",
	OpMathDiv:        "math_div",
	OpMathMod:        "math_mod",
	OpMathSign:       "math_sign",
	OpCopy:           "copy",
	OpEndMonInvent:   "end_mon_invent",
	OpGrave:          "grave",
	OpFramePush:      "frame_push",
	OpFramePop:       "frame_pop",
	OpCall:           "call",
	OpReturn:         "return",
	OpInitLevel:      "init_level",
	OpLevelFlags:     "level_flags",
	OpVarInit:        "var_init",
	OpShuffleArray:   "shuffle_array",
	OpDice:           "dice",
	OpSelAdd:         "sel_add",
	OpSelPoint:       "sel_point",
	OpSelRect:        "sel_rect",
	OpSelFillRect:    "sel_fillrect",
	OpSelLine:        "sel_line",
	OpSelRndLine:     "sel_randline",
	OpSelGrow:        "sel_grow",
	OpSelFlood:       "sel_floodfill",
	OpSelRndCoord:    "sel_rndcoord",
	OpSelEllipse:     "sel_ellipse",
	OpSelFilter:      "sel_filter",
	OpSelGradient:    "sel_gradient",
	OpSelComplement:  "sel_complement",
}

// String returns the opcode's mnemonic, or "opcode(N)" for an unknown
// value.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// Valid reports whether op is a recognized opcode value.
func (op Opcode) Valid() bool {
	return int(op) < len(opcodeNames)
}

// LevelFlags bits, packed into the Integer operand of LevelFlags.
const (
	FlagNoTeleport         = 0x1
	FlagHardFloor          = 0x2
	FlagNoMMap             = 0x4
	FlagShortSighted       = 0x8
	FlagArboreal           = 0x10
	FlagMazeLevel          = 0x20
	FlagPremapped          = 0x40
	FlagShroud             = 0x80
	FlagGraveyard          = 0x100
	FlagIcedPools          = 0x200
	FlagSolidify           = 0x400
	FlagCorrMaze           = 0x800
	FlagCheckInaccessibles = 0x1000
)

// Init-map styles, the first Integer pushed before InitLevel.
const (
	LvlInitNone      = 0
	LvlInitSolidFill = 1
	LvlInitMazeGrid  = 2
	LvlInitMines     = 3
	LvlInitRogue     = 4
)

// Monster variable-slot tags, terminated by MonVarEnd.
const (
	MonVarPeaceful = 0
	MonVarAlign    = 1
	MonVarAsleep   = 2
	MonVarAppear   = 3
	MonVarName     = 4
	MonVarFemale   = 5
	MonVarInvis    = 6
	MonVarCancel   = 7
	MonVarRevived  = 8
	MonVarAvenge   = 9
	MonVarFleeing  = 10
	MonVarBlinded  = 11
	MonVarParalyzed = 12
	MonVarStunned  = 13
	MonVarConfused = 14
	MonVarSeenTraps = 15
	MonVarEnd      = 16
)

// Object variable-slot tags, terminated by ObjVarEnd.
const (
	ObjVarSpe       = 0
	ObjVarCurse     = 1
	ObjVarCorpseNm  = 2
	ObjVarName      = 3
	ObjVarQuan      = 4
	ObjVarBuried    = 5
	ObjVarLit       = 6
	ObjVarEroded    = 7
	ObjVarLocked    = 8
	ObjVarTrapped   = 9
	ObjVarRecharged = 10
	ObjVarInvis     = 11
	ObjVarGreased   = 12
	ObjVarBroken    = 13
	ObjVarCoord     = 14
	ObjVarEnd       = 15
)

// Object count bits (the trailing Integer pushed before Object).
const (
	ObjCountContainer = 0x2
	ObjCountInsideCtr = 0x1
)

// LevRegion subtypes (the lr_type pushed before LevRegion).
const (
	LRUpStair   = 2
	LRDownStair = 3
	LRTeleUp    = 4
	LRTeleDown  = 5
	LRTele      = 6
	LRBranch    = 7
	LRPortal    = 1
)

// Selection filter kinds, pushed before SelFilter.
const (
	SelFilterSelection = 1
	SelFilterPercent   = 0
	SelFilterMapChar   = 2
)

// Gradient types, pushed before SelGradient.
const (
	GradientRadial = 0
	GradientSquare = 1
)

// Drawbridge directions, normalized from the parsed compass direction.
const (
	DBNorth = 0
	DBSouth = 1
	DBEast  = 2
	DBWest  = 3
)

// Compass direction bits accepted by MAZEWALK/ROOMDOOR and combinable
// with Pipe.
const (
	DirNorth = 1
	DirSouth = 2
	DirEast  = 4
	DirWest  = 8
	DirAny   = DirNorth | DirSouth | DirEast | DirWest
)
