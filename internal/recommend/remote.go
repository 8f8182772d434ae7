package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"finsight/internal/logging"
	"finsight/internal/models"
)

// TextModel is the remote text-generation contract: one prompt in, the raw
// response text out. Satisfied by the Gemini client; stubbed in tests.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// RemoteBackend produces recommendations through a hosted model. The prompt
// instructs the model to answer with a JSON array of {description, actions[]}
// objects; the response is decoded and validated before anything trusts it.
type RemoteBackend struct {
	model TextModel
	log   logging.Logger
}

// NewRemoteBackend wraps a TextModel.
func NewRemoteBackend(model TextModel, log logging.Logger) *RemoteBackend {
	if log == nil {
		log = &logging.MockLogger{}
	}
	return &RemoteBackend{
		model: model,
		log:   log,
	}
}

// Source returns the provenance tag for remotely generated recommendations.
func (b *RemoteBackend) Source() string {
	return models.SourceRemote
}

// Generate builds the JSON-mode prompt, makes a single round trip to the
// hosted model, strips an optional code fence and decodes the body. A decode
// failure surfaces as a DecodeError carrying the raw response.
func (b *RemoteBackend) Generate(ctx context.Context, txs []models.Transaction, promptTemplate string) ([]models.Recommendation, error) {
	if promptTemplate == "" {
		promptTemplate = DefaultJSONPromptTemplate
	}
	prompt := BuildPrompt(promptTemplate, txs)

	b.log.WithFields(
		logging.Field{Key: logging.FieldBackend, Value: b.Source()},
		logging.Field{Key: logging.FieldPromptSize, Value: len(prompt)},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	).Debug("Invoking remote model")

	content, err := b.model.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("remote generation failed: %w", err)
	}

	cleaned := StripCodeFence(content)

	var recs []models.Recommendation
	if err := json.Unmarshal([]byte(cleaned), &recs); err != nil {
		return nil, &DecodeError{Raw: content, Err: err}
	}

	return recs, nil
}

// StripCodeFence removes a fenced-code-block wrapper (```json ... ``` or
// ``` ... ```) if the response arrived inside one.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// GeminiModel implements TextModel against the Google Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiModel creates a Gemini-backed TextModel. A missing API key is a
// fatal precondition failure: it is reported before any network call.
func NewGeminiModel(ctx context.Context, apiKey, modelName string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// GenerateText makes one generation round trip; no retries or backoff.
func (m *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// Close releases the underlying API client.
func (m *GeminiModel) Close() error {
	return m.client.Close()
}
