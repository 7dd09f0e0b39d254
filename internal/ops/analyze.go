package ops

import (
	"strings"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/query"
	"github.com/hpungsan/tally/internal/record"
)

// AnalyzeOutput contains the result of the Analyze operation.
type AnalyzeOutput struct {
	ID         string            `json:"id"`
	Value      string            `json:"value"`
	Properties record.Properties `json:"properties"`
}

// Analyze computes the properties of a value without storing it.
func Analyze(cfg *config.Config, input CreateInput) (*AnalyzeOutput, error) {
	value, err := validateValue(cfg, input)
	if err != nil {
		return nil, err
	}

	props := record.Analyze(value)
	return &AnalyzeOutput{
		ID:         props.SHA256Hash,
		Value:      value,
		Properties: props,
	}, nil
}

// Translate interprets a natural-language phrase without querying the store.
func Translate(phrase string) (*query.Interpretation, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, errors.NewInvalidInput("query is required")
	}
	return query.Translate(phrase)
}
