package chat

// DefaultTokenBudget leaves headroom under GPT-4o's 128k context window.
const DefaultTokenBudget = 120000

// EstimateTokens approximates token count as ceil(len/4). This is a cheap
// heuristic, not a tokenizer; it can over- or under-estimate by a wide
// margin for non-English text or code.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// PruneHistory returns the longest contiguous suffix of history whose
// estimated token count, plus the system prompt's, fits within budget.
// The final message is the active query and is always kept, even when it
// alone exceeds the budget. Chronological order is preserved.
func PruneHistory(history []Message, systemPrompt string, budget int) []Message {
	if len(history) <= 1 {
		return history
	}

	total := EstimateTokens(systemPrompt)
	latest := history[len(history)-1]
	total += EstimateTokens(latest.Content)

	// Walk backwards from the second-to-last message, stopping the moment
	// an older message would push us over budget.
	start := len(history) - 1
	for i := len(history) - 2; i >= 0; i-- {
		cost := EstimateTokens(history[i].Content)
		if total+cost > budget {
			break
		}
		total += cost
		start = i
	}

	return history[start:]
}
