package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Resnet 50", "resnet_50"},
		{"resnet_50", "resnet_50"},
		{"UPPER", "upper"},
		{"a b c", "a_b_c"},
		{"model.skops", "model.skops"},
		{"", ""},
		{"  ", "__"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, name := range []string{"Resnet 50", "already_normal", "Mixed Case Name"} {
		once := NormalizeName(name)
		assert.Equal(t, once, NormalizeName(once))
	}
}
