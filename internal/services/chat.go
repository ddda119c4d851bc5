package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// crisisKeywords short-circuits the companion before anything reaches the
// language model. Matching is done on normalized lowercase text.
var crisisKeywords = []string{
	"kill myself",
	"suicide",
	"hurt myself",
	"don't want to live",
	"end it all",
	"no reason to live",
}

// CrisisReply is returned whenever a message matches a crisis keyword.
const CrisisReply = `I'm deeply concerned about what you're going through.

If you're in crisis, please reach out to a professional:
- 🌎 International: https://findahelpline.com
- 🇺🇸 US: 988 Suicide & Crisis Lifeline
- 🇬🇧 UK: 116 123 (Samaritans)
- 🇨🇦 Canada: 1-833-456-4566

You're not alone. Help is available. I'm here for you.`

// ChatFallbackReply is sent when the language model is unreachable.
const ChatFallbackReply = "I'm here for you. I'm having trouble connecting right now, but you're not alone. Would you like to write in your journal or try a breathing exercise?"

var practicalQuestionRe = regexp.MustCompile(`(?i)how to make|recipe|cook|boil|fry|bake|what is|explain|define`)

const practicalPromptFormat = `
You are "MindSpace Guide", a kind and supportive AI companion for mental wellness.
The user asked a practical question. Answer briefly and clearly.
Then gently return to emotional support.

User asks: "%s"

Reply in two parts:
1. A short, helpful answer to their question
2. A warm, empathetic follow-up that brings the focus back to their well-being

Example:
User: "How do I make an egg?"
→ "You can boil an egg for 6–8 minutes or fry it with a little oil. Simple and quick! While you're in the kitchen, would you like to try a 1-minute breathing exercise to stay calm?"

Now respond to: "%s"
`

const companionPromptFormat = `
You are "MindSpace Guide", a compassionate and non-judgmental AI companion for mental wellness.
Respond with empathy, warmth, and care. Use a calm, conversational tone.
Never diagnose or give medical advice.

Guidelines:
- Acknowledge the user's feelings
- Validate their experience
- Ask gentle follow-up questions if appropriate
- If they're struggling, suggest journaling, breathing, or talking to a human

Think step by step:
1. What emotion is the user expressing?
2. How can I validate that feeling?
3. What gentle response would make them feel heard?

User says: "%s"

Reply:
`

// normalizeChatText lowercases a message and straightens curly apostrophes so
// keyword phrases match regardless of how the client encodes quotes.
func normalizeChatText(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	lower = strings.ReplaceAll(lower, "’", "'")
	return lower
}

// IsCrisisMessage reports whether a message contains any crisis keyword.
func IsCrisisMessage(message string) bool {
	normalized := normalizeChatText(message)
	for _, keyword := range crisisKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

// IsPracticalQuestion reports whether the message looks like a how-to or
// definition question rather than an emotional check-in.
func IsPracticalQuestion(message string) bool {
	return practicalQuestionRe.MatchString(normalizeChatText(message))
}

// CompanionReply runs a message through the companion prompts and cleans the
// model's reply. Crisis detection is handled by the caller before this.
func (s *GeminiService) CompanionReply(ctx context.Context, message string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("chat service not configured")
	}

	var prompt string
	if IsPracticalQuestion(message) {
		prompt = fmt.Sprintf(practicalPromptFormat, message, message)
	} else {
		prompt = fmt.Sprintf(companionPromptFormat, message)
	}

	reply, err := s.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	// Strip markdown bold markers the model tends to add
	reply = strings.ReplaceAll(reply, "**", "")
	return strings.TrimSpace(reply), nil
}
