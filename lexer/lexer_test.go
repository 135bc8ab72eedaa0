package lexer_test

import (
	"testing"

	"github.com/nhdc/desc/lexer"
)

func kinds(toks []lexer.Located[lexer.Token]) []lexer.Kind {
	out := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Value.Kind
	}
	return out
}

func TestLexKeywordsAndPunctuation(t *testing.T) {
	toks, err := lexer.Lex("MAZE: \"foo\", random")
	if err != nil {
		t.Fatal(err)
	}
	want := []lexer.Kind{lexer.KMaze, lexer.KColon, lexer.KString, lexer.KComma, lexer.KRandom, lexer.KEof}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexBracketedPercent(t *testing.T) {
	toks, err := lexer.Lex("[75%]: MESSAGE")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KPercent || toks[0].Value.Int != 75 {
		t.Fatalf("token 0 = %+v, want Percent(75)", toks[0].Value)
	}
}

func TestLexBareBracketIsNotPercent(t *testing.T) {
	toks, err := lexer.Lex("[foo]")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KLBracket {
		t.Fatalf("token 0 = %+v, want LBracket", toks[0].Value)
	}
}

func TestLexVariable(t *testing.T) {
	toks, err := lexer.Lex("$foo_1")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KVariable || toks[0].Value.Str != "foo_1" {
		t.Fatalf("token 0 = %+v, want Variable(foo_1)", toks[0].Value)
	}
}

func TestLexComparisonOperators(t *testing.T) {
	toks, err := lexer.Lex("== != <= >= < >")
	if err != nil {
		t.Fatal(err)
	}
	want := []lexer.Kind{
		lexer.KCompareEq, lexer.KCompareNe, lexer.KCompareLe,
		lexer.KCompareGe, lexer.KCompareLt, lexer.KCompareGt, lexer.KEof,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexBangEqualsAliasesNotEqual(t *testing.T) {
	toks, err := lexer.Lex("!=")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KCompareNe {
		t.Fatalf("token 0 = %+v, want CompareNe", toks[0].Value)
	}
}

func TestLexBareBangIsError(t *testing.T) {
	if _, err := lexer.Lex("!"); err == nil {
		t.Fatal("expected error for bare '!'")
	}
}

func TestLexMapBlock(t *testing.T) {
	src := "MAP\n...\n.-.\nENDMAP\n"
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KMap {
		t.Fatalf("token 0 = %+v, want Map", toks[0].Value)
	}
	if toks[1].Value.Kind != lexer.KMapData {
		t.Fatalf("token 1 = %+v, want MapData", toks[1].Value)
	}
	if toks[1].Value.Str != "...\n.-." {
		t.Errorf("map data = %q", toks[1].Value.Str)
	}
}

func TestLexUnterminatedMapBlock(t *testing.T) {
	if _, err := lexer.Lex("MAP\n..."); err == nil {
		t.Fatal("expected error for unterminated MAP block")
	}
}

func TestLexUnterminatedString(t *testing.T) {
	if _, err := lexer.Lex(`"unterminated`); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestLexCharLiteralBackslashShadow(t *testing.T) {
	toks, err := lexer.Lex(`'\''`)
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KChar || toks[0].Value.Ch != '\\' {
		t.Fatalf("token 0 = %+v, want Char('\\\\')", toks[0].Value)
	}
}

func TestLexDice(t *testing.T) {
	toks, err := lexer.Lex("2d6")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KDice || toks[0].Value.Num != 2 || toks[0].Value.Die != 6 {
		t.Fatalf("token 0 = %+v, want Dice(2,6)", toks[0].Value)
	}
}

func TestLexNegativeInteger(t *testing.T) {
	toks, err := lexer.Lex("-5")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KInteger || toks[0].Value.Int != -5 {
		t.Fatalf("token 0 = %+v, want Integer(-5)", toks[0].Value)
	}
}

func TestLexUnknownCharSkipped(t *testing.T) {
	toks, err := lexer.Lex("~MAZE")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Value.Kind != lexer.KMaze {
		t.Fatalf("token 0 = %+v, want Maze (leading '~' skipped)", toks[0].Value)
	}
}
