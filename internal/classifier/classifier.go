package classifier

import (
	"math"
	"strings"

	"finsight/internal/logging"
	"finsight/internal/models"
)

// Classifier applies a frozen Model with a confidence floor. When the top
// softmax probability falls below the threshold, the label is forced to the
// "Other" fallback while the true probability is still reported.
type Classifier struct {
	model     *Model
	threshold float64
	log       logging.Logger
}

// New wraps a loaded model with the given confidence threshold. A threshold
// of 0 accepts every prediction as-is.
func New(model *Model, threshold float64, log logging.Logger) *Classifier {
	if log == nil {
		log = &logging.MockLogger{}
	}
	return &Classifier{
		model:     model,
		threshold: threshold,
		log:       log,
	}
}

// Classify maps canonical text to a (label, confidence) pair. It is a pure
// inference call against the frozen artifact: deterministic for a fixed model
// and input, never an error. Text that tokenizes to nothing scores on the
// bias alone, which typically lands under the floor and degrades to "Other".
func (c *Classifier) Classify(text string) models.ClassificationResult {
	logits := c.logits(text)
	probs := softmax(logits)

	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}

	result := models.ClassificationResult{
		Label:      c.model.labels[best],
		Confidence: probs[best],
	}

	if result.Confidence < c.threshold {
		c.log.WithFields(
			logging.Field{Key: logging.FieldCategory, Value: result.Label},
			logging.Field{Key: logging.FieldConfidence, Value: result.Confidence},
		).Debug("Prediction below confidence floor, falling back")
		result.Label = models.CategoryOther
	}

	return result
}

// ClassifyBatch maps Classify over a sequence of texts. Items are independent;
// a degenerate input yields the fallback label rather than failing the batch.
func (c *Classifier) ClassifyBatch(texts []string) []models.ClassificationResult {
	results := make([]models.ClassificationResult, len(texts))
	for i, text := range texts {
		results[i] = c.Classify(text)
	}
	return results
}

// logits runs the single forward pass: whitespace tokenization truncated to
// the model's maximum sequence length, then a bag-of-words linear score per
// label. Unknown tokens contribute nothing.
func (c *Classifier) logits(text string) []float64 {
	tokens := strings.Fields(text)
	if len(tokens) > c.model.maxSeqLen {
		tokens = tokens[:c.model.maxSeqLen]
	}

	logits := make([]float64, len(c.model.labels))
	copy(logits, c.model.bias)

	for _, token := range tokens {
		row, ok := c.model.weights[token]
		if !ok {
			continue
		}
		for i, w := range row {
			logits[i] += w
		}
	}
	return logits
}

// softmax converts logits into a probability distribution over the taxonomy.
// The max is subtracted first for numerical stability.
func softmax(logits []float64) []float64 {
	max := logits[0]
	for _, l := range logits[1:] {
		if l > max {
			max = l
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(l - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
