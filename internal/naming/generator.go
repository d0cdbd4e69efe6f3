package naming

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// DefaultPrefix is used when no prefix is configured.
const DefaultPrefix = "VVM_IMAGE"

const (
	maxNumber   = 1000
	symbolCount = 4
)

// Alphabet is the symbol set permutations are drawn from. Order matters
// only for reproducibility with a seeded source.
var Alphabet = []string{"a", "b", "B", "zB", "P", "p", "F", "f"}

// Name is one generated base name.
type Name struct {
	Prefix  string
	Number  int
	Symbols []string
}

// String joins the parts into the file stem: Prefix_Number_Symbols.
func (n Name) String() string {
	return n.Prefix + "_" + strconv.Itoa(n.Number) + "_" + strings.Join(n.Symbols, "")
}

// Generator draws names for a fixed prefix. It is not safe for concurrent
// use; each run owns its own Generator.
type Generator struct {
	prefix string
	rng    *rand.Rand
}

// NewGenerator returns a Generator for prefix. An empty prefix falls back to
// [DefaultPrefix]; a nil rng uses a time-seeded PCG source.
func NewGenerator(prefix string, rng *rand.Rand) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	return &Generator{prefix: prefix, rng: rng}
}

// Prefix returns the prefix every generated name starts with.
func (g *Generator) Prefix() string { return g.prefix }

// Next draws a new name. It always succeeds.
func (g *Generator) Next() Name {
	return Name{
		Prefix:  g.prefix,
		Number:  g.rng.IntN(maxNumber),
		Symbols: g.sample(symbolCount),
	}
}

// sample picks k symbols without replacement via a partial Fisher-Yates
// shuffle of a copy of the alphabet.
func (g *Generator) sample(k int) []string {
	pool := make([]string, len(Alphabet))
	copy(pool, Alphabet)
	for i := 0; i < k; i++ {
		j := i + g.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}
