package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataEvent(t *testing.T) {
	ev := NewDataEvent("Event 1 - padding to make exactly 50 bytes!")
	assert.Equal(t, "data: Event 1 - padding to make exactly 50 bytes!\n\n", ev.String())
	assert.Equal(t, 51, ev.Len())
	assert.Equal(t, 49, ev.BodyLen())
}

func TestNewEventRequiresDelimiter(t *testing.T) {
	_, err := NewEvent([]byte("data: x\n"))
	assert.ErrorIs(t, err, ErrNotTerminated)

	_, err = NewEvent(nil)
	assert.ErrorIs(t, err, ErrNotTerminated)

	ev, err := NewEvent([]byte("data: x\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, ev.Len())
}

func TestEventIsImmutable(t *testing.T) {
	raw := []byte("data: x\n\n")
	ev, err := NewEvent(raw)
	require.NoError(t, err)
	raw[0] = 'X'
	assert.Equal(t, "data: x\n\n", ev.String())

	b := ev.Bytes()
	b[0] = 'X'
	assert.Equal(t, "data: x\n\n", ev.String())
}
