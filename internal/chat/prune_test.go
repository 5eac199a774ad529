package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// EstimateTokens is a chars/4 heuristic, not a tokenizer. These tests pin the
// arithmetic, not real token counts.
func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}

func TestPruneHistory_SingleMessageUnchanged(t *testing.T) {
	history := []Message{{Role: RoleUser, Content: "hello"}}
	got := PruneHistory(history, "system prompt", 100)
	assert.Equal(t, history, got)
}

func TestPruneHistory_AllFitWithinBudget(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "first question"},
		{Role: RoleAssistant, Content: "first answer"},
		{Role: RoleUser, Content: "second question"},
	}
	got := PruneHistory(history, "prompt", 1000)
	assert.Equal(t, history, got)
}

func TestPruneHistory_DropsOldestFirst(t *testing.T) {
	old := Message{Role: RoleUser, Content: strings.Repeat("a", 400)}   // ~100 tokens
	mid := Message{Role: RoleAssistant, Content: strings.Repeat("b", 400)}
	latest := Message{Role: RoleUser, Content: strings.Repeat("c", 400)}

	// Budget fits the latest message plus one older one, not two.
	got := PruneHistory([]Message{old, mid, latest}, "", 220)

	require.Len(t, got, 2)
	assert.Equal(t, mid, got[0])
	assert.Equal(t, latest, got[1])
}

func TestPruneHistory_LastMessageAlwaysKept(t *testing.T) {
	// The current query alone blows the budget; it is still returned in full.
	latest := Message{Role: RoleUser, Content: strings.Repeat("q", 10000)}
	history := []Message{
		{Role: RoleUser, Content: "earlier"},
		latest,
	}
	got := PruneHistory(history, "prompt", 50)
	require.Len(t, got, 1)
	assert.Equal(t, latest, got[0])
}

func TestPruneHistory_SystemPromptCountsAgainstBudget(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: strings.Repeat("a", 200)}, // 50 tokens
		{Role: RoleUser, Content: strings.Repeat("b", 200)}, // 50 tokens
	}

	// Without a system prompt both fit; a 60-token prompt squeezes out the older.
	assert.Len(t, PruneHistory(history, "", 110), 2)
	assert.Len(t, PruneHistory(history, strings.Repeat("s", 240), 110), 1)
}

func TestPruneHistory_OutputIsContiguousSuffix(t *testing.T) {
	var history []Message
	for i := 0; i < 20; i++ {
		history = append(history, Message{Role: RoleUser, Content: strings.Repeat("m", 100+i)})
	}

	for _, budget := range []int{10, 100, 500, 5000} {
		got := PruneHistory(history, "sys", budget)
		require.NotEmpty(t, got, "budget %d", budget)

		// Last message is preserved unmodified.
		assert.Equal(t, history[len(history)-1], got[len(got)-1])

		// The output is exactly the trailing slice of the input.
		assert.Equal(t, history[len(history)-len(got):], got, "budget %d", budget)
	}
}

func TestPruneHistory_BudgetNeverIntentionallyExceeded(t *testing.T) {
	var history []Message
	for i := 0; i < 30; i++ {
		history = append(history, Message{Role: RoleUser, Content: strings.Repeat("z", 80)})
	}
	prompt := strings.Repeat("p", 100)
	budget := 300

	got := PruneHistory(history, prompt, budget)
	require.NotEmpty(t, got)

	if len(got) > 1 {
		total := EstimateTokens(prompt)
		for _, m := range got {
			total += EstimateTokens(m.Content)
		}
		assert.LessOrEqual(t, total, budget)
	}
}
