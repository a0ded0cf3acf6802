package util

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugMultiHyphen  = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug 从任意标题生成 URL 友好的 slug。
// 例: "Hello, World! 2026" → "hello-world-2026"
func GenerateSlug(s string, maxLen int) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = slugInvalidChars.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = slugMultiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if maxLen > 0 && len(result) > maxLen {
		result = strings.Trim(result[:maxLen], "-")
	}
	return result
}
