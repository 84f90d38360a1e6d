package router

import "testing"

func TestKeywordRouter(t *testing.T) {
	tests := []struct {
		query string
		want  Route
	}{
		{"What is your policy on defective product?", RouteFAQ},
		{"How long does a refund take?", RouteFAQ},
		{"Pink Puma shoes in price range 5000 to 1000", RouteData},
		{"show me nike sneakers", RouteData},
		{"How are you?", RouteSmallTalk},
		{"What is your name?", RouteSmallTalk},
		// FAQ wins when both term sets appear.
		{"What is the return policy on puma shoes?", RouteFAQ},
	}

	r := NewKeywordRouter()
	for _, tt := range tests {
		if got := r.Route(tt.query); got != tt.want {
			t.Errorf("Route(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}
