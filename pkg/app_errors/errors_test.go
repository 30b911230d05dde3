package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetail(t *testing.T) {
	err := WithDetail(ErrInsufficientInventory, "%d ticket type %s tickets are not available for event %s", 3, "VIP", "Gala")

	assert.True(t, errors.Is(err, ErrInsufficientInventory))
	assert.Equal(t, "3 ticket type VIP tickets are not available for event Gala", err.Error())

	wrapped := fmt.Errorf("purchase: %w", err)
	assert.Equal(t, "3 ticket type VIP tickets are not available for event Gala", Message(wrapped, ErrInsufficientInventory))
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, ErrEventNotFound.Error(), Message(ErrEventNotFound, ErrEventNotFound))
}
