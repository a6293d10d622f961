package store

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/roach88/pgqlir/internal/cache"
	"github.com/roach88/pgqlir/internal/queryir"
)

// patternCacheSize bounds the compiled REGEXP patterns kept across queries.
const patternCacheSize = 128

// patterns holds compiled REGEXP patterns keyed by the pattern as a string
// constant. Filters run the same pattern against every row.
var patterns = cache.New(patternCacheSize)

// regexpMatch implements `value REGEXP pattern`, which SQLite calls as
// regexp(pattern, value). The pattern must match the whole value. A NULL
// operand never matches.
func regexpMatch(pattern, value any) (bool, error) {
	if pattern == nil || value == nil {
		return false, nil
	}
	re, err := compilePattern(text(pattern))
	if err != nil {
		return false, err
	}
	return re.MatchString(text(value)), nil
}

func compilePattern(p string) (*regexp.Regexp, error) {
	if !utf8.ValidString(p) {
		return nil, fmt.Errorf("invalid regular expression %q: not valid UTF-8", p)
	}
	re, err := patterns.GetOrCompute(queryir.NewConstString(p), func(queryir.Expr) (any, error) {
		compiled, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("invalid regular expression %q: %w", p, err)
		}
		return compiled, nil
	})
	if err != nil {
		return nil, err
	}
	return re.(*regexp.Regexp), nil
}

func text(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return fmt.Sprint(v)
}
