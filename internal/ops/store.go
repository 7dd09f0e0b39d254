package ops

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/record"
	"github.com/hpungsan/tally/internal/store"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Value    any  // must be a string
	Provided bool // false when the caller sent no value at all
}

// Create analyzes a new string and stores it.
func Create(ctx context.Context, st store.Store, cfg *config.Config, input CreateInput) (*record.Record, error) {
	value, err := validateValue(cfg, input)
	if err != nil {
		return nil, err
	}

	// Cheap pre-check; Insert still enforces uniqueness atomically.
	exists, err := st.ExistsByValue(ctx, value)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if exists {
		return nil, errors.NewDuplicateValue(record.Hash(value))
	}

	rec := record.New(value, time.Now())
	if err := st.Insert(ctx, rec); err != nil {
		return nil, internalUnlessTyped(err)
	}
	return rec, nil
}

// validateValue applies the input rules shared by Create and Analyze.
func validateValue(cfg *config.Config, input CreateInput) (string, error) {
	if !input.Provided {
		return "", errors.NewInvalidInput("value is required")
	}

	value, ok := input.Value.(string)
	if !ok {
		return "", errors.NewInvalidType("value")
	}
	if strings.TrimSpace(value) == "" {
		return "", errors.NewInvalidInput("value must not be empty")
	}

	if cfg != nil && cfg.MaxValueChars > 0 {
		if n := utf8.RuneCountInString(value); n > cfg.MaxValueChars {
			return "", errors.NewValueTooLarge(cfg.MaxValueChars, n)
		}
	}
	return value, nil
}
