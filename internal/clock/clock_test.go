package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewSystem().Now().Location())
}

func TestManual(t *testing.T) {
	dhaka := time.FixedZone("BST", 6*3600)
	m := NewManual(time.Date(2024, 3, 15, 1, 0, 0, 0, dhaka))

	assert.Equal(t, time.Date(2024, 3, 14, 19, 0, 0, 0, time.UTC), m.Now())

	m.Advance(90 * time.Minute)
	assert.Equal(t, time.Date(2024, 3, 14, 20, 30, 0, 0, time.UTC), m.Now())

	m.Set(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, 2024, m.Now().Year())
}
