package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"google.golang.org/genai"
)

func TestNewWithoutAPIKey(t *testing.T) {
	fallback := New(context.Background(), "", "gemini-2.5-flash")

	assert.False(t, fallback.Available())
	assert.Equal(t, "Missing GEMINI_API_KEY. Using local retrieval fallback only.", fallback.InitError())

	result := fallback.Generate(context.Background(), "any prompt")
	assert.Equal(t, StatusFailed, result.Status)
	assert.Empty(t, result.Answer)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{errors.New("googleapi: Error 429: Resource exhausted"), StatusQuotaExceeded},
		{errors.New("quota exceeded for quota metric"), StatusQuotaExceeded},
		{errors.New("rate limit reached"), StatusQuotaExceeded},
		{errors.New("googleapi: Error 404: model not found"), StatusUnavailable},
		{errors.New("requested entity Not Found"), StatusUnavailable},
		{errors.New("context deadline exceeded"), StatusFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyError(tt.err), "error %q", tt.err)
	}
}

func TestNormalizeModelName(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", normalizeModelName("models/gemini-2.5-flash"))
	assert.Equal(t, "gemini-2.5-flash", normalizeModelName("gemini-2.5-flash"))
}

func TestSupportsGenerate(t *testing.T) {
	assert.True(t, supportsGenerate(&genai.Model{Name: "models/a"}))
	assert.True(t, supportsGenerate(&genai.Model{
		Name:             "models/b",
		SupportedActions: []string{"embedContent", "generateContent"},
	}))
	assert.False(t, supportsGenerate(&genai.Model{
		Name:             "models/c",
		SupportedActions: []string{"embedContent"},
	}))
}
