package ops

import (
	"context"
	"time"

	"github.com/hpungsan/tally/internal/store"
)

// HealthOutput contains the result of the Health operation.
type HealthOutput struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Uptime        float64   `json:"uptime"` // seconds
	StringsStored int       `json:"strings_stored"`
}

// Health reports liveness and the current store size.
func Health(ctx context.Context, st store.Store, startedAt time.Time) (*HealthOutput, error) {
	n, err := st.Count(ctx)
	if err != nil {
		return nil, internalUnlessTyped(err)
	}

	now := time.Now().UTC()
	return &HealthOutput{
		Status:        "ok",
		Timestamp:     now,
		Uptime:        now.Sub(startedAt).Seconds(),
		StringsStored: n,
	}, nil
}
