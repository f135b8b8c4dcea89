// Package gemini wraps the GenAI client used as the answer source of last
// resort, when no dialogue rule can answer a question.
package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// Models tried in order when the configured model is not available
var preferredFallbackModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-flash-latest",
}

// Status classifies the outcome of a generation call
type Status int

const (
	StatusAnswered Status = iota
	StatusQuotaExceeded
	StatusUnavailable
	StatusFailed
)

// Result is the typed outcome of one generation call. Failures never
// propagate as errors to the dialogue layer; they select a degraded answer.
type Result struct {
	Status Status
	Answer string
}

// Fallback holds the GenAI client and the model resolved at startup.
// A nil client means retrieval-only mode; InitError explains why.
type Fallback struct {
	client  *genai.Client
	model   string
	initErr string
}

// New creates the fallback client. A missing key or an initialization
// failure is non-fatal: the returned Fallback reports unavailable and the
// engine serves retrieval context instead.
func New(ctx context.Context, apiKey, modelName string) *Fallback {
	if apiKey == "" {
		return &Fallback{initErr: "Missing GEMINI_API_KEY. Using local retrieval fallback only."}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return &Fallback{initErr: fmt.Sprintf("Model initialization error: %v", err)}
	}

	model := resolveModel(ctx, client, modelName)
	log.Printf("✅ GenAI fallback ready (%s)", model)
	return &Fallback{client: client, model: model}
}

// resolveModel picks the configured model when the API lists it as
// supporting generateContent, else the first available preferred fallback,
// else the first listed model. Listing failures keep the configured name.
func resolveModel(ctx context.Context, client *genai.Client, modelName string) string {
	want := normalizeModelName(modelName)

	var available []string
	page, err := client.Models.List(ctx, &genai.ListModelsConfig{})
	if err == nil {
		for _, model := range page.Items {
			if supportsGenerate(model) {
				available = append(available, normalizeModelName(model.Name))
			}
		}
	}
	if len(available) == 0 {
		return want
	}

	candidates := append([]string{want}, preferredFallbackModels...)
	for _, candidate := range candidates {
		for _, name := range available {
			if name == candidate {
				return candidate
			}
		}
	}
	return available[0]
}

func supportsGenerate(model *genai.Model) bool {
	if len(model.SupportedActions) == 0 {
		return true
	}
	for _, action := range model.SupportedActions {
		if action == "generateContent" {
			return true
		}
	}
	return false
}

func normalizeModelName(name string) string {
	return strings.TrimPrefix(name, "models/")
}

// Available reports whether generation calls can be attempted
func (f *Fallback) Available() bool {
	return f.client != nil
}

// InitError returns the startup failure cause, empty when healthy
func (f *Fallback) InitError() string {
	return f.initErr
}

// Model returns the resolved model name
func (f *Fallback) Model() string {
	return f.model
}

// Generate sends the grounding prompt and classifies the outcome. The call
// is bounded by ctx; it never mutates session state, so a failure here is
// side-effect-free.
func (f *Fallback) Generate(ctx context.Context, prompt string) Result {
	if f.client == nil {
		return Result{Status: StatusFailed}
	}

	resp, err := f.client.Models.GenerateContent(ctx, f.model, genai.Text(prompt), nil)
	if err != nil {
		return Result{Status: classifyError(err)}
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return Result{Status: StatusFailed}
	}
	return Result{Status: StatusAnswered, Answer: answer}
}

func classifyError(err error) Status {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "quota"), strings.Contains(text, "429"), strings.Contains(text, "rate"):
		return StatusQuotaExceeded
	case strings.Contains(text, "404"), strings.Contains(text, "not found"):
		return StatusUnavailable
	default:
		return StatusFailed
	}
}
