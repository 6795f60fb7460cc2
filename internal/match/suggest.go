package match

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.6

// Suggest returns the candidate most similar to name, or "" when none
// scores at least MinSimilarity. Ties go to the earlier candidate.
func Suggest(name string, candidates []string) string {
	var (
		best      string
		bestScore float64
	)

	for _, c := range candidates {
		if c == name {
			continue
		}

		if score := Similarity(name, c); score >= MinSimilarity && score > bestScore {
			best, bestScore = c, score
		}
	}

	return best
}
