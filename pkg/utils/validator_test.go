package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("employee@test.tld"))
	assert.NoError(t, ValidateEmail("a@a"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("no-at-sign"))
	assert.Error(t, ValidateEmail("two@@signs"))
	assert.Error(t, ValidateEmail("spaced out@test.tld"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("he\x00llo\x7f"))
	assert.Equal(t, "line one\nline two\tend", SanitizeString("line one\nline two\tend"))
}
