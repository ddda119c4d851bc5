package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeGemini returns a server that answers every generateContent call
// with the given text, and a client pointed at it.
func newFakeGemini(t *testing.T, reply string) (*httptest.Server, *GeminiService) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": reply}},
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	return srv, NewGeminiService("test-key", "gemini-1.5-flash", srv.URL)
}

func newFailingGemini(status int) (*httptest.Server, *GeminiService) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	return srv, NewGeminiService("test-key", "gemini-1.5-flash", srv.URL)
}

func TestParseMoodScore(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
		ok    bool
	}{
		{"plain digit", "5", 5, true},
		{"digit with whitespace", "  3\n", 3, true},
		{"digit with trailing text", "4 out of 5", 4, true},
		{"out of range", "9", 9, true},
		{"negative", "-2", -2, true},
		{"non numeric", "banana", 0, false},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"text before digit", "mood: 4", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseMoodScore(tt.reply)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClampMood(t *testing.T) {
	assert.Equal(t, 5, clampMood(9))
	assert.Equal(t, 1, clampMood(-2))
	assert.Equal(t, 1, clampMood(0))
	assert.Equal(t, 3, clampMood(3))
	assert.Equal(t, 1, clampMood(1))
	assert.Equal(t, 5, clampMood(5))
}

func TestAnalyzeMood(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{"very positive", "5", 5},
		{"unparseable falls back to neutral", "banana", 3},
		{"out of range is clamped", "9", 5},
		{"negative is clamped", "-1", 1},
		{"empty reply falls back", "", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, svc := newFakeGemini(t, tt.reply)
			defer srv.Close()

			mood := svc.AnalyzeMood(context.Background(), "I feel hopeful today")
			assert.Equal(t, tt.want, mood)
		})
	}
}

func TestAnalyzeMoodUpstreamFailure(t *testing.T) {
	srv, svc := newFailingGemini(http.StatusInternalServerError)
	defer srv.Close()

	assert.Equal(t, DefaultMood, svc.AnalyzeMood(context.Background(), "rough day"))
}

func TestAnalyzeMoodUnreachableUpstream(t *testing.T) {
	srv, svc := newFakeGemini(t, "4")
	srv.Close() // connection refused from here on

	assert.Equal(t, DefaultMood, svc.AnalyzeMood(context.Background(), "rough day"))
}

func TestAnalyzeMoodNilService(t *testing.T) {
	var svc *GeminiService
	assert.Equal(t, DefaultMood, svc.AnalyzeMood(context.Background(), "anything"))
}

func TestAnalyzeMoodAlwaysInRange(t *testing.T) {
	for _, reply := range []string{"0", "1", "2", "3", "4", "5", "6", "100", "-50", "two", "🙂", "NaN"} {
		srv, svc := newFakeGemini(t, reply)
		mood := svc.AnalyzeMood(context.Background(), "entry text")
		srv.Close()
		assert.GreaterOrEqual(t, mood, MinMood, "reply %q", reply)
		assert.LessOrEqual(t, mood, MaxMood, "reply %q", reply)
	}
}
