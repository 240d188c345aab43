package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedemptionCode(t *testing.T) {
	code := NewRedemptionCode(7)
	assert.True(t, strings.HasPrefix(code, "QR-"))
	assert.True(t, strings.HasSuffix(code, "-7"))

	other := NewRedemptionCode(7)
	assert.NotEqual(t, code, other, "codes for the same event must differ")
}
