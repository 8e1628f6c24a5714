package session

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NathanielCodes365/GROCERYSTORE/internal/cart"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func newTestStore() *Store {
	return NewStore(NewMemoryBackend().ForSession("s1"), testLogger())
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestStore()

	_, ok := s.Token()
	assert.False(t, ok)

	s.SetToken("abc.def.ghi")
	tok, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", tok)

	s.ClearToken()
	_, ok = s.Token()
	assert.False(t, ok)
}

func TestCartRoundTrip(t *testing.T) {
	s := newTestStore()

	assert.Empty(t, s.Cart())

	items := []cart.Item{{ProductID: "apple", Quantity: 2}, {ProductID: "milk", Quantity: 1}}
	s.SaveCart(items)
	assert.Equal(t, items, s.Cart())

	s.ClearCart()
	assert.Empty(t, s.Cart())
}

func TestCartDiscardsMalformedState(t *testing.T) {
	kv := NewMemoryBackend().ForSession("s1")
	kv.Set("cart", "{not json")
	s := NewStore(kv, testLogger())

	assert.Empty(t, s.Cart())
}

func TestMemoryBackendNamespacesSessions(t *testing.T) {
	backend := NewMemoryBackend()
	a := NewStore(backend.ForSession("a"), testLogger())
	b := NewStore(backend.ForSession("b"), testLogger())

	a.SetToken("token-a")
	_, ok := b.Token()
	assert.False(t, ok)

	b.SaveCart([]cart.Item{{ProductID: "eggs", Quantity: 1}})
	assert.Empty(t, a.Cart())
}
