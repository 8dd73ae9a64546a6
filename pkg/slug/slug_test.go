package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	cases := map[string]string{
		"Clock":            "clock",
		"Dining Table":     "dining-table",
		"T-shirt":          "t-shirt",
		"  Water  Bottle ": "water-bottle",
		"Laptop (15\")":    "laptop-15",
		"":                 "",
		"---":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Generate(in), "input %q", in)
	}
}
