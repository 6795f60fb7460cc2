package match

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-rune insertions, deletions or substitutions turning one
// into the other.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// Keep the shorter string in ra; two rows of len(ra)+1 suffice.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns 1 - distance/longest over the normalized names: 1.0 for
// names that normalize identically, 0.0 for nothing in common.
func Similarity(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(na, nb))/float64(longest)
}
