package token

import "testing"

func TestKeywordsMapsReservedWords(t *testing.T) {
	for word, kind := range Keywords {
		if kindNames[kind] != word {
			t.Errorf("Keywords[%q] = %v, whose name is %q", word, kind, kindNames[kind])
		}
	}
}

func TestKeywordsOmitsPlainIdentifiers(t *testing.T) {
	for _, word := range []string{"foo", "x", "Print", "NIL"} {
		if _, ok := Keywords[word]; ok {
			t.Errorf("Keywords[%q] unexpectedly present", word)
		}
	}
}

func TestTokenStringIncludesLexeme(t *testing.T) {
	tok := Token{Kind: IDENTIFIER, Lexeme: "count", Line: 3}
	got := tok.String()
	if got != `Token{IDENTIFIER, "count", line 3}` {
		t.Errorf("String() = %q", got)
	}
}

func TestErrorTokenStringIncludesMessage(t *testing.T) {
	tok := Token{Kind: ERROR, Message: "Unterminated string.", Line: 5}
	got := tok.String()
	if got != `Token{ERROR, "Unterminated string.", line 5}` {
		t.Errorf("String() = %q", got)
	}
}
