package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	got, err := validate("hunter22")
	require.NoError(t, err)
	assert.Equal(t, "hunter22", got)

	_, err = validate("")
	assert.ErrorContains(t, err, "empty")

	_, err = validate(strings.Repeat("x", 72))
	assert.NoError(t, err)

	_, err = validate(strings.Repeat("x", 73))
	assert.ErrorContains(t, err, "72 byte")
}
