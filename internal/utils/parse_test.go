package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"zapatos", []string{"zapatos"}},
		{"zapatos, verano, oferta", []string{"zapatos", "verano", "oferta"}},
		{" zapatos ,, verano ", []string{"zapatos", "verano"}},
		{"verano, verano, oferta", []string{"verano", "oferta"}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseTags(tc.in), "entrée: %q", tc.in)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"70000", 70000},
		{"$70.000", 70000},
		{"$ 1.234.567", 1234567},
		{"70,000", 70000},
		{"", 0},
		{"gratis", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePrice(tc.in), "entrée: %q", tc.in)
	}
}
