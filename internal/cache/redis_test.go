package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedisCache_GenerateKey(t *testing.T) {
	c := NewRedisCache("localhost:6379", "foodorders")
	defer func() { _ = c.Close() }()

	require.Equal(t, "foodorders:order:123", c.GenerateKey("order", "123"))
}
