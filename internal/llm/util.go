// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop a language identifier on the opening fence, e.g. "json"
	if idx := strings.IndexAny(text, "\n{["); idx >= 0 && text[idx] == '\n' {
		firstLine := strings.TrimSpace(text[:idx])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
