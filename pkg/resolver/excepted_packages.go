package resolver

import (
	"errors"
	"strings"

	"github.com/dghubble/trie"
)

// Packages that are always loaded from the host.  JRE classes cannot be
// defined by a custom loader, and annotation access needs sun.reflect even
// when it is referenced from generated code.
var mandatoryExceptedPackages = []string{
	"java.",
	"sun.reflect.",
}

var errPrefixMatched = errors.New("prefix matched")

var exceptedPackagesTrieConfig = &trie.PathTrieConfig{
	Segmenter: byteSegmenter,
}

// ExceptedPackages is an immutable set of package prefixes whose symbols
// must come from the host.  Each prefix ends in '.'; matching is a plain
// string-prefix test.
type ExceptedPackages struct {
	prefixes []string
	trie     *trie.PathTrie
}

// NewExceptedPackages normalizes and deduplicates the given package names
// and adds the mandatory prefixes.  Blank names are ignored.
func NewExceptedPackages(names []string) *ExceptedPackages {
	ep := &ExceptedPackages{
		trie: trie.NewPathTrieWithConfig(exceptedPackagesTrieConfig),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !strings.HasSuffix(name, ".") {
			name += "."
		}
		ep.add(name)
	}
	for _, name := range mandatoryExceptedPackages {
		ep.add(name)
	}
	return ep
}

func (ep *ExceptedPackages) add(prefix string) {
	if ep.trie.Put(prefix, prefix) {
		ep.prefixes = append(ep.prefixes, prefix)
	}
}

// Contains reports whether name starts with any excepted prefix.
func (ep *ExceptedPackages) Contains(name string) bool {
	err := ep.trie.WalkPath(name, func(key string, value interface{}) error {
		return errPrefixMatched
	})
	return err == errPrefixMatched
}

// Prefixes returns the normalized prefixes in insertion order.
func (ep *ExceptedPackages) Prefixes() []string {
	return append([]string(nil), ep.prefixes...)
}

// byteSegmenter segments a key one byte at a time so that every prefix of a
// name is a trie node.
func byteSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	if start == len(path)-1 {
		return path[start:], -1
	}
	return path[start : start+1], start + 1
}
