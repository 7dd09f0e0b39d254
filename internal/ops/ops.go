// Package ops implements the service operations shared by the HTTP and MCP surfaces.
package ops

import (
	"strings"

	"github.com/hpungsan/tally/internal/errors"
)

// Address identifies a stored string either by its id (SHA-256) or by its exact value.
type Address struct {
	ByID  bool
	ID    string
	Value string // exact, never trimmed
}

// ValidateAddress validates addressing parameters.
// Rules:
// - Must specify exactly one addressing mode: id OR value
// - If both are provided → ErrAmbiguousAddressing
// - If neither is provided → ErrInvalidInput
func ValidateAddress(id, value string) (*Address, error) {
	id = strings.TrimSpace(id)

	hasID := id != ""
	hasValue := value != ""

	if hasID && hasValue {
		return nil, errors.NewAmbiguousAddressing()
	}
	if !hasID && !hasValue {
		return nil, errors.NewInvalidInput("must specify either id or value")
	}

	if hasID {
		return &Address{ByID: true, ID: strings.ToLower(id)}, nil
	}
	return &Address{Value: value}, nil
}
