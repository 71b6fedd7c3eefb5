package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

var testSong = &entity.Song{
	Title: "Night Drive", Artist: "The Wires", Genre: "synthwave", Mood: "brooding",
	Tempo: 96, Duration: 214, Tags: []string{"retro", "driving"},
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"score": 80}`, `{"score": 80}`},
		{"fenced json", "```json\n{\"score\": 80}\n```", `{"score": 80}`},
		{"fenced bare", "```\n{\"score\": 80}\n```", `{"score": 80}`},
		{"prose around", `Sure! {"score": 80} Hope it helps.`, `{"score": 80}`},
		{"nothing", "no json here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestToSuitabilityDTO_Clamps(t *testing.T) {
	got := toSuitabilityDTO(suitabilityPayload{Score: 140, Confidence: 1.7, SuitableFor: []string{" car ad ", ""}})
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, []string{"car ad"}, got.SuitableFor)

	got = toSuitabilityDTO(suitabilityPayload{Score: -3, Confidence: -0.2})
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, 0.0, got.Confidence)
	assert.Empty(t, got.SuitableFor)
}

func TestSongBrief(t *testing.T) {
	brief := songBrief(testSong, "advertising", "Night-time car commercial")
	assert.Contains(t, brief, "Song: Night Drive")
	assert.Contains(t, brief, "Tempo: 96 BPM")
	assert.Contains(t, brief, "Duration: 3:34")
	assert.Contains(t, brief, "Tags: retro, driving")
	assert.Contains(t, brief, "Project type: advertising")
	assert.NotContains(t, brief, "Lyrics")
}

func TestSongBrief_TruncatesLyricsByRune(t *testing.T) {
	song := &entity.Song{Title: "Canción", Lyrics: strings.Repeat("ñ", 2000)}
	brief := songBrief(song, "film", "")

	require.True(t, utf8.ValidString(brief))
	assert.Contains(t, brief, "Lyrics: "+strings.Repeat("ñ", maxLyricsRunes)+"...\n")
	assert.NotContains(t, brief, strings.Repeat("ñ", maxLyricsRunes+1))
}

func TestAnthropicService_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		assert.Contains(t, req.Messages[0].Content, "Night Drive")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{
				"type": "text",
				"text": "```json\n{\"score\": 87.4, \"suitable_for\": [\"car chase\"], \"reasoning\": \"Driving pulse\", \"confidence\": 0.8}\n```",
			}},
		})
	}))
	defer srv.Close()

	svc := NewAnthropicService("test-key", "claude-test")
	svc.endpoint = srv.URL

	got, err := svc.AnalyzeSyncSuitability(context.Background(), testSong, "advertising", "")
	require.NoError(t, err)
	assert.Equal(t, 87, got.Score)
	assert.Equal(t, []string{"car chase"}, got.SuitableFor)
	assert.Equal(t, 0.8, got.Confidence)
}

func TestAnthropicService_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer srv.Close()

	svc := NewAnthropicService("test-key", "claude-test")
	svc.endpoint = srv.URL

	_, err := svc.AnalyzeSyncSuitability(context.Background(), testSong, "film", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestAnthropicService_NoKey(t *testing.T) {
	_, err := NewAnthropicService("", "m").AnalyzeSyncSuitability(context.Background(), testSong, "film", "")
	assert.Error(t, err)
}

func TestGeminiService_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": `{"score": 55, "suitable_for": ["montage"], "reasoning": "ok", "confidence": 0.6}`}},
				},
			}},
		})
	}))
	defer srv.Close()

	svc := NewGeminiService("g-key", "gemini-test")
	svc.baseURL = srv.URL + "/models/%s:generateContent?key=%s"

	got, err := svc.AnalyzeSyncSuitability(context.Background(), testSong, "tv", "")
	require.NoError(t, err)
	assert.Equal(t, 55, got.Score)
	assert.Equal(t, "ok", got.Reasoning)
}

func TestGeminiService_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	svc := NewGeminiService("g-key", "gemini-test")
	svc.baseURL = srv.URL + "/models/%s:generateContent?key=%s"

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.AnalyzeSyncSuitability(ctx, testSong, "tv", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
