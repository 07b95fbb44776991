package tzdate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-01T10:15:30Z", "2024-05-01T10:15:30Z"},
		{"2024-05-01T10:15:30.250Z", "2024-05-01T10:15:30.25Z"},
		{"2024-05-01T10:15:30", "2024-05-01T10:15:30Z"},
		{"2024-05-01T10:15:30.123456", "2024-05-01T10:15:30.123456Z"},
		{"2024-05-01 10:15:30", "2024-05-01T10:15:30Z"},
		{"2024-05-01T10:15", "2024-05-01T10:15:00Z"},
		{"2024-05-01", "2024-05-01T00:00:00Z"},
		{"2024-05-01T16:15:30+06:00", "2024-05-01T10:15:30Z"},
		{"2024-05-01T16:15:30+0600", "2024-05-01T10:15:30Z"},
		{"2024-05-01T05:15:30-05:00", "2024-05-01T10:15:30Z"},
		{"  2024-05-01t10:15:30z ", "2024-05-01T10:15:30Z"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInstant(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02T15:04:05.999999999Z07:00"))
			assert.Equal(t, "UTC", got.Location().String())
		})
	}
}

func TestParseInstantRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2024-13-01T00:00:00", "2024-05-01T25:00:00Z", "1714558530"} {
		_, err := ParseInstant(in)
		require.Errorf(t, err, "input %q", in)

		var parseErr *DateParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, in, parseErr.Input)
		assert.ErrorIs(t, err, ErrDateParse)
	}
}
