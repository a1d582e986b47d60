package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYes(t *testing.T) {
	for _, answer := range []string{"y", "Y", "yes", " YES "} {
		assert.True(t, yes(answer), answer)
	}
	for _, answer := range []string{"", "n", "no", "yep", "oui"} {
		assert.False(t, yes(answer), answer)
	}
}
