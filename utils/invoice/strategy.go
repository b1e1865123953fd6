package invoice

import "regexp"

// Strategy is one named way of producing a value from text.
// Run reports false when the strategy does not apply.
type Strategy[T any] struct {
	Name string
	Run  func(text string) (T, bool)
}

// firstSuccess runs strategies in order and returns the first value that succeeds.
func firstSuccess[T any](text string, strategies []Strategy[T]) (T, string, bool) {
	for _, s := range strategies {
		if v, ok := s.Run(text); ok {
			return v, s.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// lastMatch returns the parse of the last match of re whose first capture
// group parses. Earlier matches are only used when later ones fail to parse.
func lastMatch[T any](re *regexp.Regexp, text string, parse func(string) (T, bool)) (T, bool) {
	matches := re.FindAllStringSubmatch(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if v, ok := parse(matches[i][1]); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// guard runs fn and returns fallback if it panics.
func guard[T any](fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			out = fallback
		}
	}()
	return fn()
}
