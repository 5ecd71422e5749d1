package post

import "strings"

// ExtractHashtags returns the distinct hashtags referenced by content,
// lowercased, without the leading '#', in order of first appearance.
// A tag is a '#' followed by letters, digits or underscores.
func ExtractHashtags(content string) []string {
	var tags []string
	seen := make(map[string]struct{})

	for i := 0; i < len(content); i++ {
		if content[i] != '#' {
			continue
		}
		j := i + 1
		for j < len(content) && isTagChar(content[j]) {
			j++
		}
		if j == i+1 {
			continue // bare '#'
		}
		tag := strings.ToLower(content[i+1 : j])
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
		i = j - 1
	}

	return tags
}

func isTagChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
