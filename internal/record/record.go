package record

import "time"

// Record is a stored string together with its derived properties.
type Record struct {
	// ID is the SHA-256 hex digest of Value; it doubles as the primary key
	ID string `json:"id"`

	// Value is the original text exactly as submitted
	Value string `json:"value"`

	// Properties are computed once at creation and never mutated
	Properties Properties `json:"properties"`

	// CreatedAt is the UTC insertion time
	CreatedAt time.Time `json:"created_at"`
}

// Properties are the derived, immutable attributes of a value.
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// New analyzes value and builds a record stamped with now.
func New(value string, now time.Time) *Record {
	props := Analyze(value)
	return &Record{
		ID:         props.SHA256Hash,
		Value:      value,
		Properties: props,
		CreatedAt:  now.UTC(),
	}
}
