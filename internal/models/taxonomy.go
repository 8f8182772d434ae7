package models

// CategoryOther is the designated fallback label. It is always a member of
// the taxonomy and absorbs low-confidence and out-of-distribution inputs.
const CategoryOther = "Other"

// DefaultTaxonomy is the fixed, ordered set of category labels the classifier
// can emit. The classifier's output space is exactly this set; its order must
// match the label order the frozen model was trained with.
var DefaultTaxonomy = []string{
	"Dining",
	"Groceries",
	"Utilities",
	"Entertainment",
	"Health",
	"Subscription",
	"Auto & Transport",
	"Credit Card Payment",
	"General Goods",
	"Phone",
	"Home & Garden",
	"Home Loan",
	"Income",
	"Transfer",
	"Fidelity Transfer",
	"Kid Cash",
	"Moving Expense",
	"Combined Insurance",
	"Learning",
	CategoryOther,
}

// InTaxonomy reports whether label is a member of the given taxonomy.
func InTaxonomy(taxonomy []string, label string) bool {
	for _, l := range taxonomy {
		if l == label {
			return true
		}
	}
	return false
}

// ClassificationResult is the outcome of classifying one canonical text:
// a label from the taxonomy and the softmax probability behind it. When the
// probability fell below the confidence floor, Label is CategoryOther but
// Confidence still carries the true (low) value for diagnostics.
type ClassificationResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
