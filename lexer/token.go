// Package lexer tokenizes `.des` source text into a stream of located
// tokens, replicating the reference lexer's context-sensitive MAP
// block capture, bracketed-percent lookahead, and keyword table.
package lexer

// Kind identifies a token's grammatical role. String-valued and
// literal-valued tokens carry their payload in the accompanying Token
// fields (Str, Int, Ch, Num, Die).
type Kind int

const (
	KEof Kind = iota

	// Structure
	KMaze
	KLevel
	KFlags
	KInitMap
	KGeometry
	KNomap
	KMessage

	// Map block
	KMap
	KMapData

	// Placement
	KMonster
	KObject
	KContainer
	KTrap
	KDoor
	KRoomDoor
	KDrawbridge
	KFountain
	KSink
	KPool
	KLadder
	KStair
	KAltar
	KPortal
	KTeleportRegion
	KBranch
	KGold
	KEngraving
	KGrave
	KMazeWalk
	KWallify
	KMineralize
	KNonDiggable
	KNonPasswall

	// Terrain
	KTerrain
	KReplaceTerrain
	KRegion

	// Room
	KRoom
	KSubroom
	KCorridor
	KRandomCorridors

	// Control flow
	KIf
	KElse
	KFor
	KTo
	KLoop
	KSwitch
	KCase
	KDefault
	KBreak
	KFunction
	KExit

	// Selection operations
	KSelection
	KRect
	KFillRect
	KLine
	KRandLine
	KGrow
	KFloodFill
	KRndCoord
	KCircle
	KEllipse
	KFilter
	KGradient
	KComplement

	// Misc keywords
	KShuffle
	KName
	KMonType
	KQuantity
	KBuried
	KEroded
	KErodeProof
	KRecharged
	KInvisible
	KGreased
	KFemale
	KCancelled
	KRevived
	KAvenge
	KFleeing
	KBlinded
	KParalyzed
	KStunned
	KConfused
	KSeenTraps
	KAll

	// Init map styles
	KMazeGrid
	KSolidFill
	KMines
	KRogueLev

	// Flag names (payload in Str)
	KFlagType

	// Direction
	KNorth
	KEast
	KSouth
	KWest
	KHorizontal
	KVertical

	// Up/Down
	KUp
	KDown

	// Door state (payload in Str)
	KDoorState

	// Light state
	KLit
	KUnlit

	// Alignment (payload in Str)
	KAlignment

	// Altar type (payload in Str)
	KAltarType

	// Monster attitude
	KPeaceful
	KHostile
	KAsleep
	KAwake

	// Monster appearance
	KMFeature
	KMMonster
	KMObject

	// Filling
	KFilled
	KUnfilled

	// Room shape
	KRegular
	KIrregular
	KJoined
	KUnjoined
	KLimited
	KUnlimited

	// Position
	KLeft
	KHalfLeft
	KCenter
	KHalfRight
	KRight
	KTop
	KBottom
	KAlignReg

	// Engraving type (payload in Str)
	KEngravingType

	// Curse state (payload in Str)
	KCurseType

	// Boolean
	KBoolTrue
	KBoolFalse

	KRandom
	KNoneVal

	// Gradient types
	KRadial
	KSquare

	// Humidity
	KDry
	KWet
	KHot
	KSolid
	KAny

	// Comparison
	KCompareEq
	KCompareNe
	KCompareLt
	KCompareGt
	KCompareLe
	KCompareGe

	// Trapped state
	KTrapped
	KNotTrapped

	KLevRegionKw

	// Literals
	KString
	KChar
	KInteger
	KDice
	KPercent

	KVariable

	// Punctuation
	KColon
	KComma
	KLParen
	KRParen
	KLBrace
	KRBrace
	KLBracket
	KRBracket
	KPlus
	KMinus
	KDashDash
	KEquals
	KPipe
	KAmpersand
)

// Token is a single lexed unit. Payload fields are only meaningful for
// the Kind that produces them: Str for String/Variable/MapData/
// FlagType/DoorState/Alignment/AltarType/EngravingType/CurseType; Ch
// for Char; Int for Integer/Percent; Num/Die for Dice.
type Token struct {
	Kind Kind
	Str  string
	Ch   byte
	Int  int64
	Num  int64
	Die  int64
}

// Pos is a 1-based line/column source position.
type Pos struct {
	Line, Col int
}

// Located pairs a value with the position of its first character.
type Located[T any] struct {
	Value T
	Pos   Pos
}

var keywords = map[string]Token{
	"MAZE":             {Kind: KMaze},
	"LEVEL":            {Kind: KLevel},
	"FLAGS":            {Kind: KFlags},
	"INIT_MAP":         {Kind: KInitMap},
	"GEOMETRY":         {Kind: KGeometry},
	"NOMAP":            {Kind: KNomap},
	"MESSAGE":          {Kind: KMessage},
	"MONSTER":          {Kind: KMonster},
	"monster":          {Kind: KMonster},
	"OBJECT":           {Kind: KObject},
	"obj":              {Kind: KObject},
	"object":           {Kind: KObject},
	"CONTAINER":        {Kind: KContainer},
	"TRAP":             {Kind: KTrap},
	"DOOR":             {Kind: KDoor},
	"ROOMDOOR":         {Kind: KRoomDoor},
	"DRAWBRIDGE":       {Kind: KDrawbridge},
	"FOUNTAIN":         {Kind: KFountain},
	"SINK":             {Kind: KSink},
	"POOL":             {Kind: KPool},
	"LADDER":           {Kind: KLadder},
	"STAIR":            {Kind: KStair},
	"ALTAR":            {Kind: KAltar},
	"PORTAL":           {Kind: KPortal},
	"TELEPORT_REGION":  {Kind: KTeleportRegion},
	"BRANCH":           {Kind: KBranch},
	"GOLD":             {Kind: KGold},
	"ENGRAVING":        {Kind: KEngraving},
	"GRAVE":            {Kind: KGrave},
	"MAZEWALK":         {Kind: KMazeWalk},
	"WALLIFY":          {Kind: KWallify},
	"MINERALIZE":       {Kind: KMineralize},
	"NON_DIGGABLE":     {Kind: KNonDiggable},
	"NON_PASSWALL":     {Kind: KNonPasswall},
	"TERRAIN":          {Kind: KTerrain},
	"terrain":          {Kind: KTerrain},
	"REPLACE_TERRAIN":  {Kind: KReplaceTerrain},
	"REGION":           {Kind: KRegion},
	"ROOM":             {Kind: KRoom},
	"SUBROOM":          {Kind: KSubroom},
	"CORRIDOR":         {Kind: KCorridor},
	"RANDOM_CORRIDORS": {Kind: KRandomCorridors},
	"IF":               {Kind: KIf},
	"ELSE":             {Kind: KElse},
	"FOR":              {Kind: KFor},
	"TO":               {Kind: KTo},
	"LOOP":             {Kind: KLoop},
	"SWITCH":           {Kind: KSwitch},
	"CASE":             {Kind: KCase},
	"DEFAULT":          {Kind: KDefault},
	"BREAK":            {Kind: KBreak},
	"FUNCTION":         {Kind: KFunction},
	"EXIT":             {Kind: KExit},
	"selection":        {Kind: KSelection},
	"rect":             {Kind: KRect},
	"fillrect":         {Kind: KFillRect},
	"line":             {Kind: KLine},
	"randline":         {Kind: KRandLine},
	"grow":             {Kind: KGrow},
	"floodfill":        {Kind: KFloodFill},
	"rndcoord":         {Kind: KRndCoord},
	"circle":           {Kind: KCircle},
	"ellipse":          {Kind: KEllipse},
	"filter":           {Kind: KFilter},
	"gradient":         {Kind: KGradient},
	"complement":       {Kind: KComplement},
	"SHUFFLE":          {Kind: KShuffle},
	"NAME":             {Kind: KName},
	"name":             {Kind: KName},
	"montype":          {Kind: KMonType},
	"quantity":         {Kind: KQuantity},
	"buried":           {Kind: KBuried},
	"eroded":           {Kind: KEroded},
	"erodeproof":       {Kind: KErodeProof},
	"recharged":        {Kind: KRecharged},
	"invisible":        {Kind: KInvisible},
	"greased":          {Kind: KGreased},
	"female":           {Kind: KFemale},
	"cancelled":        {Kind: KCancelled},
	"revived":          {Kind: KRevived},
	"avenge":           {Kind: KAvenge},
	"fleeing":          {Kind: KFleeing},
	"blinded":          {Kind: KBlinded},
	"paralyzed":        {Kind: KParalyzed},
	"stunned":          {Kind: KStunned},
	"confused":         {Kind: KConfused},
	"seen_traps":       {Kind: KSeenTraps},
	"all":              {Kind: KAll},
	"mazegrid":         {Kind: KMazeGrid},
	"solidfill":        {Kind: KSolidFill},
	"mines":            {Kind: KMines},
	"rogue":            {Kind: KRogueLev},
	"north":            {Kind: KNorth},
	"east":             {Kind: KEast},
	"south":            {Kind: KSouth},
	"west":             {Kind: KWest},
	"horizontal":       {Kind: KHorizontal},
	"vertical":         {Kind: KVertical},
	"up":               {Kind: KUp},
	"down":             {Kind: KDown},
	"lit":              {Kind: KLit},
	"unlit":            {Kind: KUnlit},
	"altar":            {Kind: KAltarType, Str: "altar"},
	"shrine":           {Kind: KAltarType, Str: "shrine"},
	"sanctum":          {Kind: KAltarType, Str: "sanctum"},
	"peaceful":         {Kind: KPeaceful},
	"hostile":          {Kind: KHostile},
	"asleep":           {Kind: KAsleep},
	"awake":            {Kind: KAwake},
	"m_feature":        {Kind: KMFeature},
	"m_monster":        {Kind: KMMonster},
	"m_object":         {Kind: KMObject},
	"filled":           {Kind: KFilled},
	"unfilled":         {Kind: KUnfilled},
	"regular":          {Kind: KRegular},
	"irregular":        {Kind: KIrregular},
	"joined":           {Kind: KJoined},
	"unjoined":         {Kind: KUnjoined},
	"limited":          {Kind: KLimited},
	"unlimited":        {Kind: KUnlimited},
	"left":             {Kind: KLeft},
	"half-left":        {Kind: KHalfLeft},
	"center":           {Kind: KCenter},
	"half-right":       {Kind: KHalfRight},
	"right":            {Kind: KRight},
	"top":              {Kind: KTop},
	"bottom":           {Kind: KBottom},
	"align":            {Kind: KAlignReg},
	"true":             {Kind: KBoolTrue},
	"false":            {Kind: KBoolFalse},
	"random":           {Kind: KRandom},
	"none":             {Kind: KNoneVal},
	"radial":           {Kind: KRadial},
	"square":           {Kind: KSquare},
	"dry":              {Kind: KDry},
	"wet":              {Kind: KWet},
	"hot":               {Kind: KHot},
	"solid":            {Kind: KSolid},
	"any":              {Kind: KAny},
	"trapped":          {Kind: KTrapped},
	"not_trapped":      {Kind: KNotTrapped},
	"levregion":        {Kind: KLevRegionKw},
}

func init() {
	for _, w := range []string{"noteleport", "hardfloor", "nommap", "arboreal",
		"shortsighted", "mazelevel", "premapped", "shroud", "graveyard",
		"icedpools", "solidify", "corrmaze", "inaccessibles"} {
		keywords[w] = Token{Kind: KFlagType, Str: w}
	}
	for _, w := range []string{"open", "closed", "locked", "nodoor", "broken", "secret"} {
		keywords[w] = Token{Kind: KDoorState, Str: w}
	}
	for _, w := range []string{"noalign", "law", "neutral", "chaos", "coaligned", "noncoaligned"} {
		keywords[w] = Token{Kind: KAlignment, Str: w}
	}
	for _, w := range []string{"dust", "engrave", "burn", "mark", "blood"} {
		keywords[w] = Token{Kind: KEngravingType, Str: w}
	}
	for _, w := range []string{"blessed", "uncursed", "cursed"} {
		keywords[w] = Token{Kind: KCurseType, Str: w}
	}
}
