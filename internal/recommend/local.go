package recommend

import (
	"context"
	"fmt"
	"strings"

	"finsight/internal/logging"
	"finsight/internal/models"
)

// DefaultMaxTokens bounds the local model's output length.
const DefaultMaxTokens = 200

// Generator is the on-box text-generation contract: one prompt in, raw
// generated text out. The call is synchronous and may block for the duration
// of local inference.
type Generator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// LocalBackend produces recommendations from an on-box language model. No
// JSON contract is enforced on the output; each non-blank line of generated
// text becomes one plain-string recommendation.
type LocalBackend struct {
	gen       Generator
	maxTokens int
	log       logging.Logger
}

// NewLocalBackend wraps a Generator. maxTokens <= 0 selects the default.
func NewLocalBackend(gen Generator, maxTokens int, log logging.Logger) *LocalBackend {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if log == nil {
		log = &logging.MockLogger{}
	}
	return &LocalBackend{
		gen:       gen,
		maxTokens: maxTokens,
		log:       log,
	}
}

// Source returns the provenance tag for locally generated recommendations.
func (b *LocalBackend) Source() string {
	return models.SourceLocal
}

// Generate builds the plain-text prompt, runs local inference once, and
// splits the raw output into recommendation lines. A model failure is fatal
// for the request; no partial output is returned.
func (b *LocalBackend) Generate(ctx context.Context, txs []models.Transaction, promptTemplate string) ([]models.Recommendation, error) {
	if promptTemplate == "" {
		promptTemplate = DefaultPromptTemplate
	}
	prompt := BuildPrompt(promptTemplate, txs)

	b.log.WithFields(
		logging.Field{Key: logging.FieldBackend, Value: b.Source()},
		logging.Field{Key: logging.FieldPromptSize, Value: len(prompt)},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	).Debug("Invoking local model")

	raw, err := b.gen.Complete(ctx, prompt, b.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("local model generation failed: %w", err)
	}

	return parseLines(raw), nil
}

// parseLines splits raw generated text on line breaks, discards blank lines
// and strips the leading list marker from each remaining line.
func parseLines(raw string) []models.Recommendation {
	var recs []models.Recommendation
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "- "))
		if line == "" {
			continue
		}
		recs = append(recs, models.Recommendation{Description: line})
	}
	return recs
}
