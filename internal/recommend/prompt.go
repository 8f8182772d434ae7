package recommend

import (
	"fmt"
	"strings"

	"finsight/internal/models"
)

// DefaultPromptTemplate is the plain-text prompt used by the local backend.
const DefaultPromptTemplate = "You are a financial assistant. Based on the following transactions, " +
	"give 5 actionable recommendations to help the user save money. " +
	"Be specific and practical. Transactions: "

// DefaultJSONPromptTemplate is the remote backend's prompt. It asks for a
// machine-readable answer: a JSON array of objects, each with a description
// and a list of concrete actions.
const DefaultJSONPromptTemplate = "You are a financial assistant. Based on the following transactions, " +
	"give 5 actionable recommendations to help the user save money. " +
	"Be specific and practical. Return the data in JSON format with each main recommendation " +
	"being an object with a description and a list of actions to take. Transactions: "

// promptTrailer cues the model to start the answer.
const promptTrailer = "Recommendations:"

// BuildPrompt assembles the full prompt: template text, one line per
// transaction as `date: (category) - $amount`, then the fixed trailer.
func BuildPrompt(template string, txs []models.Transaction) string {
	var b strings.Builder
	b.WriteString(template)
	b.WriteString("\n")
	for _, tx := range txs {
		fmt.Fprintf(&b, "%s: (%s) - $%s\n", tx.Date, tx.Category, tx.Amount.String())
	}
	b.WriteString(promptTrailer)
	return b.String()
}
