// Package router decides which handler a user query belongs to before
// any model call is made.
package router

import "strings"

// Route is a canonical handler name.
type Route string

const (
	RouteFAQ       Route = "faq"
	RouteData      Route = "data"
	RouteSmallTalk Route = "small-talk"
)

// Router maps a free-text query to a route.
type Router interface {
	Route(query string) Route
}

// Terms checked by substring, so "return policy" matches "policy".
var (
	faqTerms = []string{
		"policy", "refund", "return", "shipping", "payment", "warranty", "order",
	}
	dataTerms = []string{
		"shoe", "shoes", "price", "cost", "discount", "brand", "rating",
		"size", "list", "show", "buy", "product", "puma", "nike",
	}
)

// KeywordRouter routes on keyword membership. FAQ terms win over data
// terms; everything else is small talk.
type KeywordRouter struct{}

// NewKeywordRouter creates the default router.
func NewKeywordRouter() *KeywordRouter {
	return &KeywordRouter{}
}

// Route implements Router.
func (r *KeywordRouter) Route(query string) Route {
	lowered := strings.ToLower(query)
	switch {
	case containsAny(lowered, faqTerms):
		return RouteFAQ
	case containsAny(lowered, dataTerms):
		return RouteData
	default:
		return RouteSmallTalk
	}
}

func containsAny(text string, needles []string) bool {
	for _, term := range needles {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
