package geomerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with op", New("lookup3.Call", "table has %d entries", 0), "lookup3.Call: table has 0 entries"},
		{"without op", &Error{Msg: "bare"}, "bare"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIs(t *testing.T) {
	base := New("node.Process", "input cache is empty")
	wrapped := fmt.Errorf("graph: run: %w", base)

	assert.True(t, Is(base))
	assert.True(t, Is(wrapped))
	assert.False(t, Is(errors.New("plain")))
	assert.False(t, Is(nil))
}
