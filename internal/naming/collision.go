package naming

import (
	"os"
	"sync"
)

// maxDraws bounds how many names Unique draws before giving up and
// accepting a taken one.
const maxDraws = 64

// ClaimSet tracks stems handed out during a run so that a later draw does
// not reuse one. It is only consulted when unique names are requested;
// the default behavior accepts the first draw. All methods are
// goroutine-safe.
type ClaimSet struct {
	mu     sync.Mutex
	claims map[string]string // dir + stem → annotation path that owns it
}

// NewClaimSet creates an empty set.
func NewClaimSet() *ClaimSet {
	return &ClaimSet{claims: make(map[string]string)}
}

// Claim records stem in dir for owner. It reports false when another owner
// already holds it; re-claiming by the same owner succeeds.
func (cs *ClaimSet) Claim(dir, stem, owner string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	key := AnnotationPath(dir, stem)
	if cur, ok := cs.claims[key]; ok && cur != owner {
		return false
	}
	cs.claims[key] = owner
	return true
}

// Unique draws names from g until one is neither claimed in this run nor
// present on disk in dir, then claims it for owner. A stem is taken on
// disk when its annotation or an image with any of imageExts exists.
// After maxDraws attempts the last draw is returned regardless.
func (cs *ClaimSet) Unique(g *Generator, dir, owner string, imageExts ...string) Name {
	var n Name
	for i := 0; i < maxDraws; i++ {
		n = g.Next()
		if onDisk(dir, n.String(), imageExts) {
			continue
		}
		if cs.Claim(dir, n.String(), owner) {
			return n
		}
	}
	cs.mu.Lock()
	cs.claims[AnnotationPath(dir, n.String())] = owner
	cs.mu.Unlock()
	return n
}

func onDisk(dir, stem string, imageExts []string) bool {
	if _, err := os.Lstat(AnnotationPath(dir, stem)); err == nil {
		return true
	}
	for _, ext := range imageExts {
		if _, err := os.Lstat(ImagePath(dir, stem, ext)); err == nil {
			return true
		}
	}
	return false
}

// Len returns the number of claimed stems.
func (cs *ClaimSet) Len() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.claims)
}
