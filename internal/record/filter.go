package record

import "unicode/utf8"

// Filters is a conjunctive predicate set. Nil fields are not applied.
type Filters struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether no field is set.
func (f Filters) IsEmpty() bool {
	return f.IsPalindrome == nil && f.MinLength == nil && f.MaxLength == nil &&
		f.WordCount == nil && f.ContainsCharacter == nil
}

// Matches reports whether rec satisfies every present field.
func (f Filters) Matches(rec *Record) bool {
	p := rec.Properties
	if f.IsPalindrome != nil && p.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && p.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && p.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && p.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil {
		if _, ok := p.CharacterFrequencyMap[*f.ContainsCharacter]; !ok {
			return false
		}
	}
	return true
}

// IsSingleCharacter reports whether s is exactly one character.
func IsSingleCharacter(s string) bool {
	return utf8.RuneCountInString(s) == 1
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// String returns a pointer to s.
func String(s string) *string { return &s }
