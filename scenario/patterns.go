package scenario

// ErasurePatterns returns every choice of ErasureCount lost positions out of
// SampleCount, in lexicographic order
func ErasurePatterns() [][]int {
	var patterns [][]int
	for i := 0; i < SampleCount; i++ {
		for j := i + 1; j < SampleCount; j++ {
			patterns = append(patterns, []int{i, j})
		}
	}
	return patterns
}
