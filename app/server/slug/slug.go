// Package slug generates the identifiers behind posts, boards and threaded
// comments. A comment's full_slug is its materialized path from the thread
// root, one "timestamp:leaf" segment per ancestor, so sorting a post's
// comments by full_slug yields a depth-first, chronological-within-siblings
// traversal without recursive queries.
package slug

import (
	"crypto/rand"
	"math/big"
	"time"
)

const (
	// Separator joins path segments; a parent's full_slug is always a strict
	// prefix of every descendant's.
	Separator = "/"

	timeLayout = "2006.01.02.15.04.05"
)

var adjectives = []string{
	"amber", "bold", "brisk", "calm", "clever", "crisp", "dusty", "eager",
	"faded", "fancy", "fuzzy", "gentle", "glad", "grand", "happy", "hollow",
	"humble", "jolly", "keen", "lively", "lucky", "mellow", "misty", "noble",
	"odd", "pale", "proud", "quiet", "rapid", "rustic", "shiny", "silent",
	"sleek", "solid", "spry", "stark", "sunny", "swift", "vivid", "wild",
}

var nouns = []string{
	"acorn", "badger", "bay", "birch", "brook", "cedar", "cliff", "cloud",
	"comet", "crane", "delta", "dune", "ember", "falcon", "fern", "fjord",
	"glen", "grove", "harbor", "heron", "lark", "lynx", "maple", "meadow",
	"otter", "pebble", "pine", "prairie", "raven", "reef", "ridge", "river",
	"sparrow", "spruce", "summit", "thicket", "tide", "trail", "willow", "wren",
}

// Leaf returns a short random word-pair token. Uniqueness among siblings is
// not guaranteed here; the storage layer's unique index plus the caller's
// regenerate-and-retry loop make collisions safe.
func Leaf() string {
	return pick(adjectives) + "_" + pick(nouns)
}

// Compose builds the slug pair for a new comment posted at postedAt. Empty
// parent arguments mean a root comment.
func Compose(parentSlug, parentFullSlug string, postedAt time.Time) (slug, fullSlug string) {
	leaf := Leaf()
	fullLeaf := postedAt.UTC().Format(timeLayout) + ":" + leaf

	if parentSlug == "" {
		return leaf, fullLeaf
	}
	return parentSlug + Separator + leaf, parentFullSlug + Separator + fullLeaf
}

func pick(words []string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		// crypto/rand only fails when the platform's entropy source is broken
		panic(err)
	}
	return words[n.Int64()]
}
