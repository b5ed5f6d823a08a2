package billing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumbererIssuesUniqueNumbers(t *testing.T) {
	n, err := NewNumberer(3)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		num := n.Next()
		require.True(t, strings.HasPrefix(num, "INV-"), num)
		require.False(t, seen[num], "duplicate %s", num)
		seen[num] = true
	}
}

func TestNumbererRejectsBadNode(t *testing.T) {
	_, err := NewNumberer(4096)
	assert.Error(t, err)
}
