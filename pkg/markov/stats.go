package markov

// Stats holds derived, read-only metrics computed from a Model's current
// state.
type Stats struct {
	VocabularySize             int     // The number of distinct n-gram keys.
	TotalTransitions           int     // The sum of all recorded occurrence counts.
	StartSequences             int     // The number of recorded start n-grams.
	EndSequences               int     // The number of n-grams followed by a sentence terminator.
	TotalTokens                int     // The cumulative token count across all training calls.
	AverageTransitionsPerState float64 // Mean distinct successors per key; 0 for an empty model.
}

// GetStats computes a statistics snapshot without mutating the Model.
func (m *Model) GetStats() Stats {
	var totalTransitions, distinctSuccessors int
	for _, successors := range m.transitions {
		distinctSuccessors += len(successors)
		for _, count := range successors {
			totalTransitions += count
		}
	}

	stats := Stats{
		VocabularySize:   len(m.transitions),
		TotalTransitions: totalTransitions,
		StartSequences:   len(m.startKeys),
		EndSequences:     len(m.endKeys),
		TotalTokens:      m.totalTokens,
	}
	if stats.VocabularySize > 0 {
		stats.AverageTransitionsPerState = float64(distinctSuccessors) / float64(stats.VocabularySize)
	}
	return stats
}
