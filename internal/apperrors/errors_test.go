package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
)

func TestValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("create goal: %w", NewValidationError("amount", "must be positive"))

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "amount", vErr.Field)
	assert.Equal(t, "create goal: amount: must be positive", err.Error())
}

func TestNotFoundError_Wrapped(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	err := fmt.Errorf("delete goal: %w", NewNotFoundError("budget goal", id))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))

	var nfErr *NotFoundError
	assert.True(t, errors.As(err, &nfErr))
	assert.Equal(t, id, nfErr.ID)
	assert.Contains(t, err.Error(), id.String())
}
