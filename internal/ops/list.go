package ops

import (
	"context"
	"strconv"

	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/record"
	"github.com/hpungsan/tally/internal/store"
)

// ListInput carries the raw filter query parameters. Nil means absent.
type ListInput struct {
	IsPalindrome      *string
	MinLength         *string
	MaxLength         *string
	WordCount         *string
	ContainsCharacter *string
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Data           []*record.Record `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied *record.Filters  `json:"filters_applied"` // null when no filter was given
}

// List returns every stored string matching the given filters, in insertion order.
func List(ctx context.Context, st store.Store, input ListInput) (*ListOutput, error) {
	f, err := ParseFilters(input)
	if err != nil {
		return nil, err
	}
	return Filter(ctx, st, f)
}

// Filter returns every stored string matching already-typed filters.
func Filter(ctx context.Context, st store.Store, f record.Filters) (*ListOutput, error) {
	if f.ContainsCharacter != nil && !record.IsSingleCharacter(*f.ContainsCharacter) {
		return nil, errors.NewMalformedFilter("contains_character", "a single character")
	}

	recs, err := st.Filter(ctx, f)
	if err != nil {
		return nil, internalUnlessTyped(err)
	}
	if recs == nil {
		recs = []*record.Record{}
	}

	out := &ListOutput{Data: recs, Count: len(recs)}
	if !f.IsEmpty() {
		out.FiltersApplied = &f
	}
	return out, nil
}

// ParseFilters converts raw query parameters into Filters.
// Values are parsed strictly: "true"/"false" for booleans, base-10 integers,
// and exactly one character for contains_character.
func ParseFilters(input ListInput) (record.Filters, error) {
	var f record.Filters

	if input.IsPalindrome != nil {
		switch *input.IsPalindrome {
		case "true":
			f.IsPalindrome = record.Bool(true)
		case "false":
			f.IsPalindrome = record.Bool(false)
		default:
			return f, errors.NewMalformedFilter("is_palindrome", `"true" or "false"`)
		}
	}

	ints := []struct {
		name string
		raw  *string
		dst  **int
	}{
		{"min_length", input.MinLength, &f.MinLength},
		{"max_length", input.MaxLength, &f.MaxLength},
		{"word_count", input.WordCount, &f.WordCount},
	}
	for _, p := range ints {
		if p.raw == nil {
			continue
		}
		n, err := strconv.Atoi(*p.raw)
		if err != nil {
			return f, errors.NewMalformedFilter(p.name, "an integer")
		}
		*p.dst = record.Int(n)
	}

	if input.ContainsCharacter != nil {
		if !record.IsSingleCharacter(*input.ContainsCharacter) {
			return f, errors.NewMalformedFilter("contains_character", "a single character")
		}
		f.ContainsCharacter = record.String(*input.ContainsCharacter)
	}

	return f, nil
}
