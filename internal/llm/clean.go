package llm

import "strings"

// CleanJSONResponse strips markdown fences and, when the payload is wrapped
// in prose, cuts it down to the outermost object braces. Providers are asked
// for bare JSON but do not always comply.
func CleanJSONResponse(raw string) string {
	content := strings.TrimSpace(raw)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if strings.HasPrefix(strings.ToLower(content), "json") {
			content = content[len("json"):]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	if strings.HasPrefix(content, "{") && strings.HasSuffix(content, "}") {
		return content
	}

	first := strings.Index(content, "{")
	last := strings.LastIndex(content, "}")
	if first != -1 && last > first {
		return content[first : last+1]
	}
	return content
}
