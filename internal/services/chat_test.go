package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCrisisMessage(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"I want to kill myself", true},
		{"thinking about suicide", true},
		{"I might hurt myself", true},
		{"I don't want to live", true},
		{"I don’t want to live", true}, // curly apostrophe from mobile keyboards
		{"I just want to end it all", true},
		{"there is no reason to live", true},
		{"SUICIDE", true},
		{"I had a great day today", false},
		{"the endives were all gone", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCrisisMessage(tt.message), "message %q", tt.message)
	}
}

func TestIsPracticalQuestion(t *testing.T) {
	assert.True(t, IsPracticalQuestion("How to make pasta?"))
	assert.True(t, IsPracticalQuestion("what is anxiety"))
	assert.True(t, IsPracticalQuestion("can you EXPLAIN meditation"))
	assert.True(t, IsPracticalQuestion("best way to boil an egg"))
	assert.False(t, IsPracticalQuestion("I feel really down today"))
	assert.False(t, IsPracticalQuestion(""))
}

func TestCompanionReplyStripsMarkdownBold(t *testing.T) {
	srv, svc := newFakeGemini(t, "**Hello!** I hear you. **Take a breath.**\n")
	defer srv.Close()

	reply, err := svc.CompanionReply(context.Background(), "I feel overwhelmed")
	require.NoError(t, err)
	assert.Equal(t, "Hello! I hear you. Take a breath.", reply)
}

func TestCompanionReplyUpstreamError(t *testing.T) {
	srv, svc := newFailingGemini(http.StatusServiceUnavailable)
	defer srv.Close()

	_, err := svc.CompanionReply(context.Background(), "I feel overwhelmed")
	assert.Error(t, err)
}

func TestCompanionReplyNilService(t *testing.T) {
	var svc *GeminiService
	_, err := svc.CompanionReply(context.Background(), "hello")
	assert.Error(t, err)
}
