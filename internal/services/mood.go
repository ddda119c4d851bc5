package services

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	// DefaultMood is stored when the classifier fails or returns something
	// that cannot be read as a number.
	DefaultMood = 3
	MinMood     = 1
	MaxMood     = 5
)

const moodPromptFormat = `
Analyze the emotional tone of this journal entry and return ONLY a number from 1 to 5:
1 = Very negative (hopeless, anxious, depressed)
2 = Negative
3 = Neutral or mixed
4 = Positive
5 = Very positive (joyful, grateful, hopeful)

Do NOT add explanations. Only return the number.

Journal entry: "%s"
`

// AnalyzeMood classifies the emotional tone of a journal entry on a 1–5
// scale. The model is untrusted: whatever comes back is parsed with a
// default and clamped, so this never fails and never returns a value
// outside [1,5]. Safe to call on a nil service (classifier not configured).
func (s *GeminiService) AnalyzeMood(ctx context.Context, content string) int {
	if s == nil {
		return DefaultMood
	}

	reply, err := s.GenerateContent(ctx, fmt.Sprintf(moodPromptFormat, content))
	if err != nil {
		log.Printf("Mood analysis error: %v", err)
		return DefaultMood
	}

	score, ok := parseMoodScore(reply)
	if !ok {
		return DefaultMood
	}
	return clampMood(score)
}

// parseMoodScore reads a leading integer from the model's reply. Returns
// ok=false when no digits lead the trimmed text.
func parseMoodScore(reply string) (int, bool) {
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return 0, false
	}

	i := 0
	negative := false
	if trimmed[0] == '-' {
		negative = true
		i = 1
	}

	value := 0
	digits := 0
	for ; i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9'; i++ {
		value = value*10 + int(trimmed[i]-'0')
		digits++
		if digits > 9 {
			break
		}
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		value = -value
	}
	return value, true
}

func clampMood(v int) int {
	if v < MinMood {
		return MinMood
	}
	if v > MaxMood {
		return MaxMood
	}
	return v
}
