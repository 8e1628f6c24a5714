// Package session holds the per-session client state: the auth token and the
// cart, persisted under two keys in a pluggable key-value backend. The layer
// performs no expiry enforcement; a stale or forged token is accepted at face
// value and rejected, if at all, server-side.
package session

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/NathanielCodes365/GROCERYSTORE/internal/cart"
)

const (
	keyToken = "token"
	keyCart  = "cart"
)

// KeyValueStore is the durable per-session string storage the Store writes
// through. Implementations must survive page reloads but not explicit
// deletion.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Backend hands out a KeyValueStore namespaced to one session id.
type Backend interface {
	ForSession(sessionID string) KeyValueStore
}

// Store reads and writes the two persisted session keys.
type Store struct {
	kv  KeyValueStore
	log logrus.FieldLogger
}

func NewStore(kv KeyValueStore, log logrus.FieldLogger) *Store {
	return &Store{kv: kv, log: log}
}

func (s *Store) SetToken(token string) {
	s.kv.Set(keyToken, token)
}

// Token returns the stored bearer token, or false when no session exists.
func (s *Store) Token() (string, bool) {
	t, ok := s.kv.Get(keyToken)
	if !ok || t == "" {
		return "", false
	}
	return t, true
}

func (s *Store) ClearToken() {
	s.kv.Delete(keyToken)
}

// Cart returns the persisted cart, empty when the key is absent or holds
// malformed JSON.
func (s *Store) Cart() []cart.Item {
	raw, ok := s.kv.Get(keyCart)
	if !ok || raw == "" {
		return nil
	}
	var items []cart.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.WithField("error", err).Warn("discarding unreadable cart state")
		return nil
	}
	return items
}

func (s *Store) SaveCart(items []cart.Item) {
	if items == nil {
		items = []cart.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.log.WithField("error", err).Error("failed to encode cart state")
		return
	}
	s.kv.Set(keyCart, string(raw))
}

func (s *Store) ClearCart() {
	s.kv.Delete(keyCart)
}
