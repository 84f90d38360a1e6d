package agent

import "strings"

// Classifier decides which plan type fits a user goal. The built-in
// implementation is a keyword heuristic; hosts can substitute a
// smarter one without touching the loop.
type Classifier interface {
	Classify(goal string) PlanType
}

// FAQ keywords win over data-query keywords when both match. That
// precedence matches the shipped behavior for mixed goals like
// "show me return policy AND cheap shoes"; do not reorder the checks
// without confirming the desired routing.
var faqKeywords = []string{
	"return",
	"refund",
	"shipping",
	"payment",
	"warranty",
	"delivery",
	"exchange",
}

var dataQueryKeywords = []string{
	"price",
	"cost",
	"cheap",
	"discount",
	"rating",
	"brand",
	"size",
	"availability",
	"stock",
	"show",
	"list",
	"buy",
	"product",
	"shoe",
	"shoes",
	"laptop",
	"phones",
}

// KeywordClassifier routes by substring match against fixed keyword
// lists, defaulting to FAQ when nothing matches.
type KeywordClassifier struct {
	FAQKeywords  []string
	DataKeywords []string
}

// NewKeywordClassifier returns the default keyword classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		FAQKeywords:  faqKeywords,
		DataKeywords: dataQueryKeywords,
	}
}

func (c *KeywordClassifier) Classify(goal string) PlanType {
	lowered := strings.ToLower(goal)
	if mentions(lowered, c.FAQKeywords) {
		return PlanFAQ
	}
	if mentions(lowered, c.DataKeywords) {
		return PlanDataQuery
	}
	return PlanFAQ
}

func mentions(text string, keywords []string) bool {
	for _, word := range keywords {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
