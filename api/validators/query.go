package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// ParseQueryDate reads an optional YYYY-MM-DD query parameter. A zero time
// means the parameter was absent.
func ParseQueryDate(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "date must use YYYY-MM-DD").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// URLParamInt64 reads a positive numeric chi route parameter.
func URLParamInt64(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
