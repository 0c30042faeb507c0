// Package apierror translates engine errors and raw request values into Huma
// status errors.
package apierror

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
)

const dateLayout = "2006-01-02"

// From maps err to a Huma error: validation failures become 400, missing
// entities 404, and anything else a 500 carrying msg.
func From(err error, msg string) error {
	var vErr *apperrors.ValidationError
	var nfErr *apperrors.NotFoundError

	switch {
	case errors.As(err, &vErr):
		return huma.NewError(http.StatusBadRequest, vErr.Error())
	case errors.As(err, &nfErr):
		return huma.NewError(http.StatusNotFound, nfErr.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC3339 timestamp.
// An empty value parses to the zero time so the engines can report it as
// missing.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return t, nil
}

// FormatDate renders t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
