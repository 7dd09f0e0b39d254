package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hpungsan/tally/internal/config"
)

// runApp executes the CLI with args and returns stdout and the run error.
func runApp(t *testing.T, stdin *strings.Reader, args ...string) (string, error) {
	t.Helper()
	var in io.Reader
	if stdin != nil {
		in = stdin
	}
	var out, errOut bytes.Buffer
	err := newCLIApp(in, &out, &errOut).Run(append([]string{"tally", "--config-dir", t.TempDir()}, args...))
	return out.String(), err
}

type analyzeResult struct {
	ID         string `json:"id"`
	Value      string `json:"value"`
	Properties struct {
		Length       int    `json:"length"`
		IsPalindrome bool   `json:"is_palindrome"`
		WordCount    int    `json:"word_count"`
		SHA256Hash   string `json:"sha256_hash"`
	} `json:"properties"`
}

func decodeAnalyze(t *testing.T, out string) analyzeResult {
	t.Helper()
	var res analyzeResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	return res
}

func TestAnalyzeCommand_Argument(t *testing.T) {
	out, err := runApp(t, nil, "analyze", "racecar")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	res := decodeAnalyze(t, out)
	if res.Value != "racecar" {
		t.Errorf("Value = %q, want racecar", res.Value)
	}
	if res.Properties.Length != 7 {
		t.Errorf("Length = %d, want 7", res.Properties.Length)
	}
	if !res.Properties.IsPalindrome {
		t.Error("IsPalindrome = false, want true")
	}
	if res.ID != res.Properties.SHA256Hash {
		t.Errorf("ID = %q, want sha256_hash %q", res.ID, res.Properties.SHA256Hash)
	}
}

func TestAnalyzeCommand_JoinsArguments(t *testing.T) {
	out, err := runApp(t, nil, "analyze", "hello", "world")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	res := decodeAnalyze(t, out)
	if res.Value != "hello world" {
		t.Errorf("Value = %q, want %q", res.Value, "hello world")
	}
	if res.Properties.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", res.Properties.WordCount)
	}
}

func TestAnalyzeCommand_Stdin(t *testing.T) {
	out, err := runApp(t, strings.NewReader("level\n"), "analyze")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	res := decodeAnalyze(t, out)
	if res.Value != "level" {
		t.Errorf("Value = %q, want level (trailing newline dropped)", res.Value)
	}
	if !res.Properties.IsPalindrome {
		t.Error("IsPalindrome = false, want true")
	}
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   *strings.Reader
		args    []string
		wantErr string
	}{
		{"no input", nil, []string{"analyze"}, "[INVALID_INPUT]"},
		{"whitespace only", nil, []string{"analyze", "   "}, "[INVALID_INPUT] value must not be empty"},
		{"empty stdin", strings.NewReader("\n"), []string{"analyze"}, "[INVALID_INPUT]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestTranslateCommand(t *testing.T) {
	out, err := runApp(t, nil, "translate", "all", "single", "word", "palindromic", "strings")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	var res struct {
		Original      string `json:"original"`
		ParsedFilters struct {
			IsPalindrome *bool `json:"is_palindrome"`
			WordCount    *int  `json:"word_count"`
		} `json:"parsed_filters"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	if res.Original != "all single word palindromic strings" {
		t.Errorf("Original = %q", res.Original)
	}
	if res.ParsedFilters.IsPalindrome == nil || !*res.ParsedFilters.IsPalindrome {
		t.Errorf("is_palindrome = %v, want true", res.ParsedFilters.IsPalindrome)
	}
	if res.ParsedFilters.WordCount == nil || *res.ParsedFilters.WordCount != 1 {
		t.Errorf("word_count = %v, want 1", res.ParsedFilters.WordCount)
	}
}

func TestTranslateCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing query", []string{"translate"}, "[INVALID_INPUT] query is required"},
		{"nothing parsed", []string{"translate", "hello", "there"}, "[NO_FILTERS_PARSED]"},
		{"conflicting", []string{"translate", "longer than 10 characters and shorter than 3 characters"}, "[CONFLICTING_FILTERS]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, nil, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewHTTPServer(t *testing.T) {
	for _, backend := range []string{"memory", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Store = backend
			cfg.Port = 4321

			srv, st, err := newHTTPServer(cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("newHTTPServer failed: %v", err)
			}
			defer st.Close()

			if srv.Addr != "0.0.0.0:4321" {
				t.Errorf("Addr = %q, want 0.0.0.0:4321", srv.Addr)
			}

			rec := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != http.StatusOK {
				t.Errorf("GET /health status = %d, want 200", rec.Code)
			}
		})
	}
}

func TestNewHTTPServer_UnknownStore(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store = "postgres"

	if _, _, err := newHTTPServer(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unknown store, got nil")
	}
}

func TestWarnUnknownDisabled(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	cfg := config.DefaultConfig()
	cfg.DisabledTools = []string{"string_delete", "bogus_tool"}
	cfg.DisabledTypes = []string{"query", "bogus_type"}

	warnUnknownDisabled(log, cfg)

	out := buf.String()
	if !strings.Contains(out, "bogus_tool") || !strings.Contains(out, "bogus_type") {
		t.Errorf("expected warnings for unknown names, got %q", out)
	}
	if strings.Contains(out, "string_delete") || strings.Contains(out, `"query"`) {
		t.Errorf("known names should not be reported, got %q", out)
	}
}

func TestServeCommand_InvalidOverride(t *testing.T) {
	_, err := runApp(t, nil, "serve", "--store", "postgres")
	if err == nil {
		t.Fatal("expected error for invalid store override, got nil")
	}
	if !strings.Contains(err.Error(), "store must be one of") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestTrimNewline(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc\n", "abc"},
		{"abc\r\n", "abc"},
		{"abc\n\n", "abc\n"},
		{"  abc  ", "  abc  "},
		{"", ""},
	}
	for _, tt := range tests {
		if got := trimNewline(tt.in); got != tt.want {
			t.Errorf("trimNewline(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf)
	if !strings.Contains(buf.String(), "tally serve") {
		t.Errorf("banner missing usage, got %q", buf.String())
	}
}
