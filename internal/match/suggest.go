package match

import "fmt"

// MinSuggestScore is the similarity a candidate needs before Suggest offers it.
const MinSuggestScore = 0.6

// Suggest returns the candidate most similar to name. Ties keep the earliest
// candidate so suggestions follow declaration order.
func Suggest(name string, candidates []string) (string, bool) {
	best, bestScore := "", 0.0

	for _, c := range candidates {
		if score := Similarity(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSuggestScore {
		return "", false
	}

	return best, true
}

// Hint renders a " (did you mean `x`?)" suffix for error messages, or the
// empty string when nothing is close enough.
func Hint(name string, candidates []string) string {
	if s, ok := Suggest(name, candidates); ok && s != name {
		return fmt.Sprintf(" (did you mean `%s`?)", s)
	}

	return ""
}
