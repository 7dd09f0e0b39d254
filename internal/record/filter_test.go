package record

import (
	"testing"
	"time"
)

func TestFilters_IsEmpty(t *testing.T) {
	if !(Filters{}).IsEmpty() {
		t.Error("zero Filters should be empty")
	}
	if (Filters{WordCount: Int(0)}).IsEmpty() {
		t.Error("Filters with a zero-valued field set should not be empty")
	}
}

func TestFilters_Matches(t *testing.T) {
	now := time.Now()
	racecar := New("racecar", now)
	hello := New("hello world", now)
	level := New("Level", now)

	tests := []struct {
		name    string
		filters Filters
		rec     *Record
		want    bool
	}{
		{name: "empty matches everything", filters: Filters{}, rec: hello, want: true},
		{name: "palindrome true", filters: Filters{IsPalindrome: Bool(true)}, rec: racecar, want: true},
		{name: "palindrome false", filters: Filters{IsPalindrome: Bool(false)}, rec: racecar, want: false},
		{name: "min length inclusive", filters: Filters{MinLength: Int(7)}, rec: racecar, want: true},
		{name: "min length excludes", filters: Filters{MinLength: Int(8)}, rec: racecar, want: false},
		{name: "max length inclusive", filters: Filters{MaxLength: Int(11)}, rec: hello, want: true},
		{name: "max length excludes", filters: Filters{MaxLength: Int(10)}, rec: hello, want: false},
		{name: "word count", filters: Filters{WordCount: Int(2)}, rec: hello, want: true},
		{name: "word count mismatch", filters: Filters{WordCount: Int(1)}, rec: hello, want: false},
		{name: "contains", filters: Filters{ContainsCharacter: String("w")}, rec: hello, want: true},
		{name: "contains is case-sensitive", filters: Filters{ContainsCharacter: String("l")}, rec: level, want: true},
		{name: "contains uppercase miss", filters: Filters{ContainsCharacter: String("L")}, rec: hello, want: false},
		{name: "contains space", filters: Filters{ContainsCharacter: String(" ")}, rec: hello, want: true},
		{
			name:    "all fields AND together",
			filters: Filters{IsPalindrome: Bool(true), MinLength: Int(5), MaxLength: Int(7), WordCount: Int(1), ContainsCharacter: String("e")},
			rec:     racecar,
			want:    true,
		},
		{
			name:    "one failing field rejects",
			filters: Filters{IsPalindrome: Bool(true), MinLength: Int(5), ContainsCharacter: String("z")},
			rec:     racecar,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Matches(tt.rec); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.rec.Value, got, tt.want)
			}
		})
	}
}

func TestIsSingleCharacter(t *testing.T) {
	tests := map[string]bool{
		"a":  true,
		"é":  true,
		" ":  true,
		"":   false,
		"ab": false,
	}
	for in, want := range tests {
		if got := IsSingleCharacter(in); got != want {
			t.Errorf("IsSingleCharacter(%q) = %v, want %v", in, got, want)
		}
	}
}
