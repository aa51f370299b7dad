// Package namespace layers dotted keys over a flat key-value mapping.
//
// A key is one word or two words joined by a dot. Words are made of
// letters (any script), numbers and underscores. A key "parent.child"
// belongs to the namespace "parent". Namespaces are not stored; they are
// computed from key prefixes.
package namespace

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/matsen/blast/internal/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"
)

// KeyFormat describes the accepted key shape for error messages.
const KeyFormat = "`<word1>[.<word2>]` where words consist of letters, numbers and underscores"

// keyPattern matches word(.word)? with Unicode-aware word characters.
var keyPattern = regexp.MustCompile(`^[\p{L}\p{N}_]+(\.[\p{L}\p{N}_]+)?$`)

// ErrInvalidKey is matched by every *InvalidKeyError.
var ErrInvalidKey = errors.New("invalid key")

// InvalidKeyError reports a key that does not match the key grammar.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key `%s`: expected format %s", e.Key, KeyFormat)
}

// Is lets errors.Is(err, ErrInvalidKey) match.
func (e *InvalidKeyError) Is(target error) bool {
	return target == ErrInvalidKey
}

// Mapping is the flat storage a Store is layered on.
// *storage.Store satisfies it.
type Mapping interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Contains(key string) bool
	Keys() []string
	Count() int
	Clear() error
}

// Store enforces the key grammar and provides namespace-scoped operations.
type Store struct {
	m Mapping
}

// New returns a Store over m.
func New(m Mapping) *Store {
	return &Store{m: m}
}

// Normalize returns key in Unicode NFC so that composed and decomposed
// spellings of the same text address the same entry.
func Normalize(key string) string {
	return norm.NFC.String(key)
}

// IsValidKey reports whether key matches the key grammar.
func IsValidKey(key string) bool {
	return keyPattern.MatchString(Normalize(key))
}

// ValidateKey returns an *InvalidKeyError if key is malformed.
func ValidateKey(key string) error {
	if !IsValidKey(key) {
		return &InvalidKeyError{Key: key}
	}
	return nil
}

// checked validates key and returns its normalized form.
func checked(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return Normalize(key), nil
}

// resolve validates key and returns the stored spelling to address. A key
// present exactly as written wins; otherwise the NFC form is used, so
// entries written under a non-NFC spelling stay reachable.
func (s *Store) resolve(key string) (string, error) {
	k, err := checked(key)
	if err != nil {
		return "", err
	}
	if k != key && s.m.Contains(key) {
		return key, nil
	}
	return k, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, error) {
	k, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	return s.m.Get(k)
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	k, err := s.resolve(key)
	if err != nil {
		return err
	}
	return s.m.Set(k, value)
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	k, err := s.resolve(key)
	if err != nil {
		return err
	}
	return s.m.Delete(k)
}

// Contains reports whether key is present. Malformed keys are never present.
func (s *Store) Contains(key string) bool {
	k, err := s.resolve(key)
	if err != nil {
		return false
	}
	return s.m.Contains(k)
}

// Count returns the total number of entries.
func (s *Store) Count() int {
	return s.m.Count()
}

// List returns the keys in namespace prefix, sorted. An empty prefix lists
// every key. The result is never nil.
func (s *Store) List(prefix string) ([]string, error) {
	match, err := matcher(prefix)
	if err != nil {
		return nil, err
	}

	keys := []string{}
	for _, k := range s.m.Keys() {
		if match(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear removes every key in namespace prefix, or every key when prefix is
// empty. It returns the number of entries removed. A namespace with no
// entries is not an error.
//
// The survivors are collected first and written back after the mapping is
// emptied, so the mapping never holds a partially cleared namespace.
func (s *Store) Clear(prefix string) (int, error) {
	match, err := matcher(prefix)
	if err != nil {
		return 0, err
	}

	before := s.m.Count()
	survivors := make(map[string]string)
	for _, k := range s.m.Keys() {
		if match(k) {
			continue
		}
		v, err := s.m.Get(k)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", k, err)
		}
		survivors[k] = v
	}

	if err := s.m.Clear(); err != nil {
		return 0, err
	}
	for k, v := range survivors {
		if err := s.m.Set(k, v); err != nil {
			return 0, fmt.Errorf("restoring %s: %w", k, err)
		}
	}

	removed := before - len(survivors)
	logger.Log.WithField("namespace", prefix).Debugf("cleared %d entries", removed)
	return removed, nil
}

// Move renames key to dest, overwriting dest if it exists. A missing key
// is reported as storage's not-found error.
func (s *Store) Move(key, dest string) error {
	k, err := s.resolve(key)
	if err != nil {
		return err
	}
	d, err := s.resolve(dest)
	if err != nil {
		return err
	}

	v, err := s.m.Get(k)
	if err != nil {
		return err
	}
	if k == d {
		return nil
	}
	if err := s.m.Set(d, v); err != nil {
		return err
	}
	if err := s.m.Delete(k); err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{"from": k, "to": d}).Debug("moved entry")
	return nil
}

// matcher returns a predicate selecting the keys in namespace prefix.
// An empty prefix selects every key.
func matcher(prefix string) (func(string) bool, error) {
	if prefix == "" {
		return func(string) bool { return true }, nil
	}
	p, err := checked(prefix)
	if err != nil {
		return nil, err
	}
	p += "."
	return func(k string) bool { return strings.HasPrefix(k, p) }, nil
}
