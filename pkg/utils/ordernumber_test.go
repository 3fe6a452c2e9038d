package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "CC/ON/KHJ/01", FormatOrderNumber("KHJ", 1))
	assert.Equal(t, "CC/ON/KHJ/42", FormatOrderNumber("KHJ", 42))
	// The padding widens past two digits instead of truncating.
	assert.Equal(t, "CC/ON/DU/107", FormatOrderNumber("DU", 107))
}
