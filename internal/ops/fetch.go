package ops

import (
	"context"

	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/record"
	"github.com/hpungsan/tally/internal/store"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	ID    string
	Value string
}

// Get retrieves a stored string by id or by value.
func Get(ctx context.Context, st store.Store, input GetInput) (*record.Record, error) {
	addr, err := ValidateAddress(input.ID, input.Value)
	if err != nil {
		return nil, err
	}

	var rec *record.Record
	if addr.ByID {
		rec, err = st.GetByKey(ctx, addr.ID)
	} else {
		rec, err = st.GetByValue(ctx, addr.Value)
	}
	if err != nil {
		return nil, internalUnlessTyped(err)
	}
	return rec, nil
}

// internalUnlessTyped passes TallyErrors through and wraps anything else as INTERNAL.
func internalUnlessTyped(err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.NewInternal(err)
}
