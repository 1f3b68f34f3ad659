package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "pi:route:abc123", prefixed("route:abc123"))
	assert.Equal(t, "pi:", prefixed(""))
}
