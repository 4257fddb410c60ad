package scenescroller

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/match"
)

// keyKind tags the variant held by a Key.
type keyKind uint8

const (
	keyName   keyKind = iota // exact event name
	keyGlob                  // tidwall/match glob over defined names
	keyRegexp                // regular expression over defined names
)

// Key selects event names. An exact name selects (and lazily creates) that one
// event. A pattern selects every currently defined event name it matches and
// never creates new ones.
type Key struct {
	kind keyKind
	name string // exact name or glob pattern
	re   *regexp.Regexp
}

// Name returns a key selecting exactly the event called name.
func Name(name string) Key {
	return Key{kind: keyName, name: name}
}

// Glob returns a pattern key using glob syntax: '*' matches any run of
// characters and '?' matches one character. "change:*" selects every defined
// event whose name starts with "change:".
func Glob(pattern string) Key {
	return Key{kind: keyGlob, name: pattern}
}

// Regexp returns a pattern key selecting defined event names matched by re.
// Like the regexp package, an unanchored expression matches substrings.
func Regexp(re *regexp.Regexp) Key {
	if re == nil {
		panic("scenescroller: nil regexp")
	}
	return Key{kind: keyRegexp, re: re}
}

// patternCacheSize bounds the number of compiled expressions kept by Pattern.
const patternCacheSize = 128

// patternCache holds compiled expressions keyed by source text. It only
// saves recompilation: a key built from a cached expression behaves exactly
// like one compiled fresh.
var patternCache = mustPatternCache()

func mustPatternCache() *lru.Cache[string, *regexp.Regexp] {
	c, err := lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		panic(fmt.Sprintf("scenescroller: pattern cache: %v", err))
	}
	return c
}

// Pattern compiles expr as a regular expression and returns a pattern key.
// Repeated calls with the same expr may reuse an earlier compilation.
func Pattern(expr string) (Key, error) {
	if re, ok := patternCache.Get(expr); ok {
		return Key{kind: keyRegexp, re: re}, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Key{}, fmt.Errorf("scenescroller: pattern %q: %w", expr, err)
	}
	patternCache.Add(expr, re)
	return Key{kind: keyRegexp, re: re}, nil
}

// MustPattern is like Pattern but panics if expr does not compile.
func MustPattern(expr string) Key {
	k, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return k
}

// IsPattern reports whether k selects names by matching rather than exactly.
func (k Key) IsPattern() bool {
	return k.kind != keyName
}

// Matches reports whether the event called name is selected by k.
func (k Key) Matches(name string) bool {
	switch k.kind {
	case keyGlob:
		return match.Match(name, k.name)
	case keyRegexp:
		return k.re.MatchString(name)
	default:
		return k.name == name
	}
}

// String returns the name, glob or expression the key was built from.
func (k Key) String() string {
	switch k.kind {
	case keyGlob:
		return "glob:" + k.name
	case keyRegexp:
		return "regexp:" + k.re.String()
	default:
		return k.name
	}
}
