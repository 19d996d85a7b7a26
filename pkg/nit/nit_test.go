package nit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"800197268-4", "800197268-4"},
		{"800.197.268-4", "800197268-4"},
		{"8001972684", "800197268-4"},
		{"900373115", "900373115-3"},
		{" 860.002.964 ", "860002964-4"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestNormalize_Invalido(t *testing.T) {
	for _, in := range []string{"", "12345", "800197268-5", "80019726841"} {
		_, err := Normalize(in)
		assert.True(t, errors.Is(err, ErrInvalid), "%q: %v", in, err)
	}
}
