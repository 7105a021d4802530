package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRewritesSlang(t *testing.T) {
	assert.Equal(t, "fan not working please fix please", Normalize("fan not wokring plz fix pls"))
}

func TestNormalizeLowercasesAndCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "water leak in bathroom", Normalize("  Watet   LEEK in bathrom \n"))
}

func TestNormalizeSubstringSemantics(t *testing.T) {
	// Replacement is substring-based on purpose; "ac" rewrites inside words too.
	assert.Equal(t, "air conditioner broken", Normalize("ac broken"))
	assert.Equal(t, "blair conditionerk paint peeling", Normalize("black paint peeling"))
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \t "))
}

func TestNormalizeDoesNotRewriteCorrectedForms(t *testing.T) {
	// "workin" is a prefix of "working"; the table must not append a
	// trailing g to text that is already correct.
	assert.Equal(t, "fan not working", Normalize("fan not working"))
	assert.Equal(t, "fan not working", Normalize(Normalize("fan not wokring")))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"fan not wokring plz fix pls",
		"tap leek in hstl bathrom",
		"door hinge broken urgnt",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
