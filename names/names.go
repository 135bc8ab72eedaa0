// Package names resolves monster, object, and trap names to the
// numeric ids the compiler packs into Monst/Obj operands and Trap
// pushes. Tables are process-lifetime immutable arrays built once in
// init, matching the "no writer, no lock needed" rule for read-only
// domain data.
//
// The monster/object tables are a representative subset of the full
// in-game permanent data tables (several hundred entries in the
// original game's monst.c/objects.c, not part of the retrieved
// corpus): large enough to exercise both passes of the lookup
// algorithm and every name referenced by the compiler's own test
// scenarios, but not a complete game data dump. The lookup algorithm
// itself — two-pass, class-symbol filtered — is complete.
package names

import "golang.org/x/exp/slices"

type monsterEntry struct {
	name   string
	symbol byte
}

// Table index order matters: it is the id returned to callers, so the
// table must never be reordered once entries have shipped.
var monsterTable = []monsterEntry{
	{"giant ant", 'a'},
	{"soldier ant", 'a'},
	{"killer bee", 'a'},
	{"acid blob", 'b'},
	{"gray ooze", 'b'},
	{"cockatrice", 'c'},
	{"chickatrice", 'c'},
	{"jackal", 'd'},
	{"fox", 'd'},
	{"wolf", 'd'},
	{"floating eye", 'e'},
	{"freezing sphere", 'e'},
	{"kitten", 'f'},
	{"housecat", 'f'},
	{"gnome lord", 'G'},
	{"gnome", 'G'},
	{"gnomish wizard", 'G'},
	{"hill orc", 'o'},
	{"orc shaman", 'o'},
	{"goblin", 'o'},
	{"dwarf", 'h'},
	{"dwarf lord", 'h'},
	{"imp", 'i'},
	{"quasit", 'i'},
	{"blue jelly", 'j'},
	{"spotted jelly", 'j'},
	{"kobold", 'k'},
	{"kobold lord", 'k'},
	{"leprechaun", 'l'},
	{"small mimic", 'm'},
	{"large mimic", 'm'},
	{"water moccasin", 'S'},
	{"garter snake", 'S'},
	{"grid bug", 'x'},
	{"yellow light", 'y'},
	{"zruty", 'z'},
	{"angel", 'A'},
	{"archon", 'A'},
	{"vampire bat", 'B'},
	{"giant bat", 'B'},
	{"centaur", 'C'},
	{"baby gray dragon", 'D'},
	{"gray dragon", 'D'},
	{"red dragon", 'D'},
	{"air elemental", 'E'},
	{"fire elemental", 'E'},
	{"violet fungus", 'F'},
	{"green mold", 'F'},
	{"stone giant", 'H'},
	{"hill giant", 'H'},
	{"giant eel", 'e'},
	{"jabberwock", 'J'},
	{"keystone kop", 'K'},
	{"kop sergeant", 'K'},
	{"liche", 'L'},
	{"demilich", 'L'},
	{"mummy", 'M'},
	{"naga", 'N'},
	{"ogre", 'O'},
	{"ogre lord", 'O'},
	{"black pudding", 'P'},
	{"brown pudding", 'P'},
	{"rust monster", 'R'},
	{"troll", 'T'},
	{"umber hulk", 'U'},
	{"vampire", 'V'},
	{"vampire lord", 'V'},
	{"barrow wight", 'W'},
	{"nightmare", 'W'},
	{"xorn", 'X'},
	{"yeti", 'Y'},
	{"zombie", 'Z'},
	{"human zombie", 'Z'},
	{"Wizard of Yendor", '@'},
	{"shopkeeper", '@'},
	{"guard", '@'},
	{"ghost", ' '},
	{"flesh golem", '\''},
	{"iron golem", '\''},
	{"horned devil", '&'},
	{"succubus", '&'},
}

// LookupMonster resolves name to its table index. When classChar is
// nonzero, only entries whose display symbol equals classChar are
// considered. First pass is exact case-sensitive match; second pass
// lowercases both sides.
func LookupMonster(name string, classChar byte) (int16, bool) {
	return lookupMonster(name, classChar)
}

func lookupMonster(name string, classChar byte) (int16, bool) {
	for i, e := range monsterTable {
		if classChar != 0 && e.symbol != classChar {
			continue
		}
		if e.name == name {
			return int16(i), true
		}
	}
	lname := toLower(name)
	for i, e := range monsterTable {
		if classChar != 0 && e.symbol != classChar {
			continue
		}
		if toLower(e.name) == lname {
			return int16(i), true
		}
	}
	return -1, false
}

type objectEntry struct {
	name   string
	symbol byte
}

var objectTable = []objectEntry{
	{"long sword", ')'},
	{"dagger", ')'},
	{"orcish dagger", ')'},
	{"mace", ')'},
	{"leather armor", '['},
	{"plate mail", '['},
	{"small shield", '['},
	{"ring mail", '['},
	{"ring of protection", '='},
	{"ring of adornment", '='},
	{"amulet of strangulation", '"'},
	{"amulet of life saving", '"'},
	{"pick-axe", '('},
	{"tin opener", '('},
	{"bag of holding", '('},
	{"food ration", '%'},
	{"corpse", '%'},
	{"apple", '%'},
	{"potion of healing", '!'},
	{"potion of sickness", '!'},
	{"scroll of identify", '?'},
	{"scroll of teleportation", '?'},
	{"spellbook of magic missile", '+'},
	{"spellbook of identify", '+'},
	{"wand of striking", '/'},
	{"wand of digging", '/'},
	{"gold piece", '$'},
	{"diamond", '*'},
	{"rock", '`'},
	{"boulder", '`'},
	{"heavy iron ball", '0'},
	{"iron chain", '_'},
	{"blinding venom", '.'},
}

// LookupObject has the same shape as LookupMonster; classChar filters
// on the object's display symbol.
func LookupObject(name string, classChar byte) (int16, bool) {
	for i, e := range objectTable {
		if classChar != 0 && e.symbol != classChar {
			continue
		}
		if e.name == name {
			return int16(i), true
		}
	}
	lname := toLower(name)
	idx := slices.IndexFunc(objectTable, func(e objectEntry) bool {
		if classChar != 0 && e.symbol != classChar {
			return false
		}
		return toLower(e.name) == lname
	})
	if idx >= 0 {
		return int16(idx), true
	}
	return -1, false
}

var trapTable = []struct {
	name string
	code int64
}{
	{"arrow", 1},
	{"dart", 2},
	{"falling rock", 3},
	{"board", 4},
	{"bear", 5},
	{"land mine", 6},
	{"rolling boulder", 7},
	{"sleep gas", 8},
	{"rust", 9},
	{"fire", 10},
	{"pit", 11},
	{"spiked pit", 12},
	{"hole", 13},
	{"trap door", 14},
	{"teleport", 15},
	{"level teleport", 16},
	{"magic portal", 17},
	{"web", 18},
	{"statue", 19},
	{"magic", 20},
	{"anti magic", 21},
	{"polymorph", 22},
	{"vibrating square", 23},
}

// LookupTrap resolves a trap name to its fixed code in [1,23].
func LookupTrap(name string) (int64, bool) {
	for _, e := range trapTable {
		if e.name == name {
			return e.code, true
		}
	}
	return 0, false
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
