package record

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hpungsan/tally/internal/errors"
)

// Analyze derives the property set of text. Characters are Unicode code points.
func Analyze(text string) Properties {
	freq := CharacterFrequency(text)
	return Properties{
		Length:                utf8.RuneCountInString(text),
		IsPalindrome:          IsPalindrome(text),
		UniqueCharacters:      len(freq),
		WordCount:             WordCount(text),
		SHA256Hash:            Hash(text),
		CharacterFrequencyMap: freq,
	}
}

// AnalyzeValue is Analyze for untyped input such as decoded JSON.
// Anything other than a string is rejected with a 422 INVALID_INPUT error.
func AnalyzeValue(v any) (Properties, error) {
	text, ok := v.(string)
	if !ok {
		return Properties{}, errors.NewInvalidType("value")
	}
	return Analyze(text), nil
}

// IsPalindrome lowercases text, drops whitespace (punctuation is kept),
// and compares the result with its reversal.
func IsPalindrome(text string) bool {
	runes := make([]rune, 0, len(text))
	for _, r := range strings.ToLower(text) {
		if !unicode.IsSpace(r) {
			runes = append(runes, r)
		}
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// WordCount counts maximal runs of non-whitespace.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Hash returns the lowercase hex SHA-256 digest of the exact bytes of text.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// CharacterFrequency counts occurrences of each character, case-sensitive.
func CharacterFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, r := range text {
		freq[string(r)]++
	}
	return freq
}
