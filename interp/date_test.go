package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteDateReplacesFormatLetters(t *testing.T) {
	assert.Equal(t, "    -  -  ", string(substituteDate([]byte("yyyy-MM-dd"))))
}

func TestSubstituteDateEmptyQuotedRegion(t *testing.T) {
	assert.Equal(t, "", string(substituteDate([]byte("''"))))
}

func TestSubstituteDateQuotedLiteralsPassThrough(t *testing.T) {
	assert.Equal(t, "yMd", string(substituteDate([]byte("'yMd'"))))
}

func TestSubstituteDatePunctuationPassesThrough(t *testing.T) {
	assert.Equal(t, " -  -  ", string(substituteDate([]byte("y-MM-dd"))))
}
