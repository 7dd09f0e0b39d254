package ops

import (
	"context"

	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/record"
	"github.com/hpungsan/tally/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID    string
	Value string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes a stored string. Deletion is permanent.
func Delete(ctx context.Context, st store.Store, input DeleteInput) (*DeleteOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Value)
	if err != nil {
		return nil, err
	}

	var (
		id      string
		deleted bool
	)
	if addr.ByID {
		id = addr.ID
		deleted, err = st.DeleteByKey(ctx, id)
	} else {
		id = record.Hash(addr.Value)
		deleted, err = st.DeleteByValue(ctx, addr.Value)
	}
	if err != nil {
		return nil, internalUnlessTyped(err)
	}
	if !deleted {
		identifier := addr.Value
		if addr.ByID {
			identifier = addr.ID
		}
		return nil, errors.NewNotFound(identifier)
	}

	return &DeleteOutput{Deleted: true, ID: id}, nil
}
