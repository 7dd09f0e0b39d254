// Package query turns short English phrases into record filters.
//
// The grammar is a fixed, ordered list of rules. Every rule is checked against
// the lowercased, trimmed phrase and later rules overwrite fields set by
// earlier ones, so "two word strings, exactly 5 words" yields word_count 5.
package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/record"
)

// Interpretation is the result of a successful translation.
type Interpretation struct {
	Original      string         `json:"original"`
	ParsedFilters record.Filters `json:"parsed_filters"`
}

var (
	exactWordsRegex  = regexp.MustCompile(`exactly\s+(\d+)\s+words?`)
	longerThanRegex  = regexp.MustCompile(`longer\s+than\s+(\d+)\s+characters?`)
	shorterThanRegex = regexp.MustCompile(`shorter\s+than\s+(\d+)\s+characters?`)
	atLeastRegex     = regexp.MustCompile(`at\s+least\s+(\d+)\s+characters?`)
	atMostRegex      = regexp.MustCompile(`at\s+most\s+(\d+)\s+characters?`)
	exactLengthRegex = regexp.MustCompile(`exactly\s+(\d+)\s+characters?|(\d+)\s+chars`)
	containsRegex    = regexp.MustCompile(`contains?\s+(?:the\s+)?(?:letter\s+)?([a-z])`)
	theLetterRegex   = regexp.MustCompile(`the\s+letter\s+([a-z])`)
)

// rule inspects the normalized phrase and updates f when it applies.
type rule struct {
	name  string
	apply func(phrase string, f *record.Filters)
}

// rules run in order; the order is part of the grammar.
var rules = []rule{
	{"palindrome", func(p string, f *record.Filters) {
		if strings.Contains(p, "palindrom") {
			f.IsPalindrome = record.Bool(true)
		}
	}},
	{"one word", func(p string, f *record.Filters) {
		if strings.Contains(p, "single word") || strings.Contains(p, "one word") {
			f.WordCount = record.Int(1)
		}
	}},
	{"two words", func(p string, f *record.Filters) {
		if strings.Contains(p, "two word") {
			f.WordCount = record.Int(2)
		}
	}},
	{"three words", func(p string, f *record.Filters) {
		if strings.Contains(p, "three word") {
			f.WordCount = record.Int(3)
		}
	}},
	{"exactly n words", func(p string, f *record.Filters) {
		if n, ok := matchInt(exactWordsRegex, p); ok {
			f.WordCount = record.Int(n)
		}
	}},
	{"longer than", func(p string, f *record.Filters) {
		if n, ok := matchInt(longerThanRegex, p); ok && n < math.MaxInt {
			f.MinLength = record.Int(n + 1)
		}
	}},
	{"shorter than", func(p string, f *record.Filters) {
		if n, ok := matchInt(shorterThanRegex, p); ok {
			f.MaxLength = record.Int(n - 1)
		}
	}},
	{"at least", func(p string, f *record.Filters) {
		if n, ok := matchInt(atLeastRegex, p); ok {
			f.MinLength = record.Int(n)
		}
	}},
	{"at most", func(p string, f *record.Filters) {
		if n, ok := matchInt(atMostRegex, p); ok {
			f.MaxLength = record.Int(n)
		}
	}},
	{"exact length", func(p string, f *record.Filters) {
		if n, ok := matchInt(exactLengthRegex, p); ok {
			f.MinLength = record.Int(n)
			f.MaxLength = record.Int(n)
		}
	}},
	{"contains letter", func(p string, f *record.Filters) {
		if m := containsRegex.FindStringSubmatch(p); m != nil {
			f.ContainsCharacter = record.String(m[1])
		}
	}},
	{"first vowel", func(p string, f *record.Filters) {
		if strings.Contains(p, "first vowel") {
			f.ContainsCharacter = record.String("a")
		}
	}},
	{"the letter", func(p string, f *record.Filters) {
		if m := theLetterRegex.FindStringSubmatch(p); m != nil {
			f.ContainsCharacter = record.String(m[1])
		}
	}},
}

// Translate maps phrase to a filter set.
// It fails with NO_FILTERS_PARSED when no rule applies and with
// CONFLICTING_FILTERS when the resulting min_length exceeds max_length.
func Translate(phrase string) (*Interpretation, error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))

	var filters record.Filters
	for _, r := range rules {
		r.apply(normalized, &filters)
	}

	if filters.IsEmpty() {
		return nil, errors.NewNoFiltersParsed(phrase)
	}
	if filters.MinLength != nil && filters.MaxLength != nil && *filters.MinLength > *filters.MaxLength {
		return nil, errors.NewConflictingFilters(*filters.MinLength, *filters.MaxLength)
	}

	return &Interpretation{
		Original:      phrase,
		ParsedFilters: filters,
	}, nil
}

// matchInt returns the integer captured by the first non-empty group of re.
// Numbers too large for int are treated as no match.
func matchInt(re *regexp.Regexp, phrase string) (int, bool) {
	m := re.FindStringSubmatch(phrase)
	if m == nil {
		return 0, false
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
