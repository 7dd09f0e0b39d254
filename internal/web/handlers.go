package web

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/metrics"
	"github.com/hpungsan/tally/internal/ops"
	"github.com/hpungsan/tally/internal/store"
)

// minBodyBytes is the request body allowance on top of the value itself.
const minBodyBytes = 4096

// Handlers contains the HTTP route handlers.
type Handlers struct {
	store     store.Store
	cfg       *config.Config
	log       zerolog.Logger
	metrics   *metrics.Metrics
	version   string
	startedAt time.Time
}

// HandleIndex handles GET / by describing the service and its endpoints.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{
		"service": "tally",
		"version": h.version,
		"endpoints": map[string]string{
			"POST /strings":                           "Analyze and store a string",
			"GET /strings":                            "List strings, optionally filtered",
			"GET /strings/{value}":                    "Get a stored string",
			"GET /strings/filter-by-natural-language": "Filter strings with a natural-language query",
			"DELETE /strings/{value}":                 "Delete a stored string",
			"GET /health":                             "Health check",
			"GET /metrics":                            "Prometheus metrics",
		},
	})
}

// HandleCreate handles POST /strings: analyze and store a string.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := h.decodeCreate(w, r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	rec, err := ops.Create(r.Context(), h.store, h.cfg, input)
	if err != nil {
		renderError(w, r, err)
		return
	}
	h.recordStoreSize(r.Context(), h.metrics.RecordCreate)

	renderJSON(w, http.StatusCreated, rec)
}

// decodeCreate reads {"value": ...} from the request body. The value is
// decoded without a type so that non-strings can be reported as 422.
func (h *Handlers) decodeCreate(w http.ResponseWriter, r *http.Request) (ops.CreateInput, error) {
	body := io.Reader(r.Body)
	if h.cfg.MaxValueChars > 0 {
		// A JSON-escaped rune never exceeds 12 bytes (a \uXXXX surrogate pair),
		// so any body over this limit holds a value over the character limit.
		limit := int64(h.cfg.MaxValueChars)*12 + minBodyBytes
		body = http.MaxBytesReader(w, r.Body, limit)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.As(err, &maxErr):
			return ops.CreateInput{}, errors.NewBodyTooLarge(maxErr.Limit)
		case stderrors.Is(err, io.EOF):
			return ops.CreateInput{}, errors.NewInvalidInput("request body is required")
		default:
			return ops.CreateInput{}, errors.NewInvalidInput("request body must be a JSON object")
		}
	}

	raw, ok := payload["value"]
	if !ok {
		return ops.CreateInput{}, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return ops.CreateInput{}, errors.NewInvalidInput("request body must be a JSON object")
	}
	return ops.CreateInput{Value: value, Provided: true}, nil
}

// HandleList handles GET /strings, filtered by discrete query parameters.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	param := func(name string) *string {
		if !q.Has(name) {
			return nil
		}
		v := q.Get(name)
		return &v
	}

	result, err := ops.List(r.Context(), h.store, ops.ListInput{
		IsPalindrome:      param("is_palindrome"),
		MinLength:         param("min_length"),
		MaxLength:         param("max_length"),
		WordCount:         param("word_count"),
		ContainsCharacter: param("contains_character"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleSearch handles GET /strings/filter-by-natural-language.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Search(r.Context(), h.store, ops.SearchInput{
		Query: r.URL.Query().Get("query"),
	})
	h.recordTranslation(err)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleGet handles GET /strings/{value}.
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := ops.Get(r.Context(), h.store, ops.GetInput{Value: r.PathValue("value")})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, rec)
}

// HandleDelete handles DELETE /strings/{value}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Delete(r.Context(), h.store, ops.DeleteInput{Value: r.PathValue("value")}); err != nil {
		renderError(w, r, err)
		return
	}
	h.recordStoreSize(r.Context(), h.metrics.RecordDelete)

	w.WriteHeader(http.StatusNoContent)
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Health(r.Context(), h.store, h.startedAt)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleNotFound answers every unrouted request.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusNotFound, errorBody{
		Status:  "error",
		Code:    string(errors.ErrNotFound),
		Message: "endpoint not found",
	})
}

func (h *Handlers) recordStoreSize(ctx context.Context, record func(stored int)) {
	n, err := h.store.Count(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("count strings for metrics")
		return
	}
	record(n)
}

func (h *Handlers) recordTranslation(err error) {
	switch {
	case err == nil:
		h.metrics.RecordTranslation(metrics.OutcomeParsed)
	case errors.Is(err, errors.ErrNoFiltersParsed):
		h.metrics.RecordTranslation(metrics.OutcomeNoFilters)
	case errors.Is(err, errors.ErrConflictingFilters):
		h.metrics.RecordTranslation(metrics.OutcomeConflicting)
	}
}
