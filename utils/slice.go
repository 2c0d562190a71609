package utils

import "strings"

// NormalizeTags trims whitespace, drops empties, and removes duplicate
// values from a tag list, preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	list := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		list = append(list, tag)
	}
	return list
}
