package db

import (
	"strings"

	"github.com/adaway/adaway/internal/model"
)

// FilterSourcesByTokens returns the sources whose url contains every token,
// ignoring case (Unicode lower-casing). With no tokens the input slice is returned as is.
func FilterSourcesByTokens(sources []model.HostsSource, tokens []string) []model.HostsSource {
	if len(tokens) == 0 {
		return sources
	}
	out := make([]model.HostsSource, 0, len(sources))
	for _, s := range sources {
		url := strings.ToLower(s.URL)
		matchedAll := true
		for _, tok := range tokens {
			if !strings.Contains(url, strings.ToLower(tok)) {
				matchedAll = false
				break
			}
		}
		if matchedAll {
			out = append(out, s)
		}
	}
	return out
}
