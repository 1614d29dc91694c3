package qa

import "strings"

// DeriveTags seeds a question's tag list: the explicitly supplied tags merged
// with the title's whitespace-split tokens, each token stripped to lowercase
// alphanumerics. Duplicates (exact string match) and empty tokens are
// skipped; supplied tags keep their position ahead of derived ones.
func DeriveTags(title string, tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}

	for _, token := range strings.Fields(title) {
		token = stripNonAlnum(token)
		token = strings.ToLower(token)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		result = append(result, token)
	}
	return result
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
