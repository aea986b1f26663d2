package flags

import (
	"fmt"
	"strings"
)

// FormatChoiceUsage renders "`<a|B|c>` description" with the default choice upper-cased.
// Choices are trimmed and deduplicated case-insensitively.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	rendered := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, duplicate := seen[normalizedChoice]; duplicate || len(normalizedChoice) == 0 {
			continue
		}
		seen[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		rendered = append(rendered, trimmedChoice)
	}

	placeholder := "`<" + strings.Join(rendered, "|") + ">`"
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return placeholder
	}
	return fmt.Sprintf("%s %s", placeholder, trimmedDescription)
}
