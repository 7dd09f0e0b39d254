package ops

import (
	"context"

	"github.com/hpungsan/tally/internal/query"
	"github.com/hpungsan/tally/internal/record"
	"github.com/hpungsan/tally/internal/store"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // natural-language phrase, required
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Data             []*record.Record      `json:"data"`
	Count            int                   `json:"count"`
	InterpretedQuery *query.Interpretation `json:"interpreted_query"`
}

// Search translates a natural-language phrase into filters and applies them.
func Search(ctx context.Context, st store.Store, input SearchInput) (*SearchOutput, error) {
	interp, err := Translate(input.Query)
	if err != nil {
		return nil, err
	}

	recs, err := st.Filter(ctx, interp.ParsedFilters)
	if err != nil {
		return nil, internalUnlessTyped(err)
	}
	if recs == nil {
		recs = []*record.Record{}
	}

	return &SearchOutput{
		Data:             recs,
		Count:            len(recs),
		InterpretedQuery: interp,
	}, nil
}
