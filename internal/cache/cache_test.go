// internal/cache/cache_test.go
package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"https://www.Shop.com/":           "shop.com",
		"shop.com":                        "shop.com",
		"http://SHOP.COM":                 "shop.com",
		"https://shop.com/products?p=2":   "shop.com",
		"www.shop.com/collections/all":    "shop.com",
		"  https://www.shop.com  ":        "shop.com",
		"%zz/with/path":                   "%zz", // malformed input degrades to string cleanup
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeURL(input), "input %q", input)
	}
}

func TestGetSetNormalizesKeys(t *testing.T) {
	c := New(DefaultTTL, DefaultMaxEntries)
	c.Set("shop.com", "result")

	for _, u := range []string{"https://www.Shop.com/", "shop.com", "http://SHOP.COM"} {
		v, _, ok := c.Get(u)
		require.True(t, ok, "expected hit for %q", u)
		assert.Equal(t, "result", v)
	}
	assert.Equal(t, 1, c.Len())
}

func TestTTLExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := New(time.Hour, DefaultMaxEntries, WithClock(func() time.Time { return clock() }))

	c.Set("shop.com", "result")

	_, age, ok := c.Get("shop.com")
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), age)

	now = now.Add(time.Hour + time.Second)
	_, _, ok = c.Get("shop.com")
	assert.False(t, ok, "entry past TTL must be treated as absent")
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on read")
}

func TestGetReportsAge(t *testing.T) {
	now := time.Now()
	c := New(24*time.Hour, DefaultMaxEntries, WithClock(func() time.Time { return now }))

	c.Set("shop.com", "result")
	base := now
	now = base.Add(3 * time.Hour)

	_, age, ok := c.Get("shop.com")
	require.True(t, ok)
	assert.Equal(t, 3*time.Hour, age)
}

func TestLRUEviction(t *testing.T) {
	c := New(DefaultTTL, 3)

	c.Set("a.com", 1)
	c.Set("b.com", 2)
	c.Set("c.com", 3)

	// Touch a.com so b.com becomes the least recently used.
	_, _, ok := c.Get("a.com")
	require.True(t, ok)

	c.Set("d.com", 4)

	assert.Equal(t, 3, c.Len())
	_, _, ok = c.Get("b.com")
	assert.False(t, ok, "least-recently-used entry must be the one evicted")
	for _, u := range []string{"a.com", "c.com", "d.com"} {
		_, _, ok := c.Get(u)
		assert.True(t, ok, "expected %q to survive", u)
	}
}

func TestEvictionIsExact(t *testing.T) {
	c := New(DefaultTTL, 5)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("store%d.com", i), i)
	}
	c.Set("store5.com", 5)

	assert.Equal(t, 5, c.Len())
	_, _, ok := c.Get("store0.com")
	assert.False(t, ok, "only the oldest entry is evicted")
	for i := 1; i <= 5; i++ {
		_, _, ok := c.Get(fmt.Sprintf("store%d.com", i))
		assert.True(t, ok)
	}
}

func TestSetOverwriteDoesNotEvict(t *testing.T) {
	c := New(DefaultTTL, 2)
	c.Set("a.com", 1)
	c.Set("b.com", 2)
	c.Set("a.com", 10) // existing key, no eviction

	assert.Equal(t, 2, c.Len())
	v, _, ok := c.Get("a.com")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	_, _, ok = c.Get("b.com")
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	c := New(DefaultTTL, DefaultMaxEntries)
	c.Set("shop.com", "result")
	c.Delete("https://www.shop.com/")

	_, _, ok := c.Get("shop.com")
	assert.False(t, ok)
}

func TestKeysListsOriginalURLsMostRecentFirst(t *testing.T) {
	c := New(DefaultTTL, DefaultMaxEntries)
	c.Set("https://www.Shop-A.com/products", "a")
	c.Set("shop-b.com", "b")

	// A hit promotes shop-a back to the front.
	_, _, ok := c.Get("shop-a.com")
	require.True(t, ok)

	assert.Equal(t, []string{"https://www.Shop-A.com/products", "shop-b.com"}, c.Keys())
}

func TestKeysEmptyCache(t *testing.T) {
	c := New(DefaultTTL, DefaultMaxEntries)
	assert.Empty(t, c.Keys())
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "just now", FormatAge(30*time.Second))
	assert.Equal(t, "5 minutes ago", FormatAge(5*time.Minute))
	assert.Equal(t, "3 hours ago", FormatAge(3*time.Hour+10*time.Minute))
	assert.Equal(t, "2 days ago", FormatAge(49*time.Hour))
}
