package models

import "strings"

// NormalizeTags trims every tag, drops blanks and suppresses duplicates.
// The first occurrence of a tag keeps its position.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = appendIfNotExists(out, strings.TrimSpace(tag))
	}
	return out
}

// AddTag returns tags with tag appended unless it is blank or already present
func AddTag(tags []string, tag string) []string {
	return appendIfNotExists(append([]string{}, tags...), strings.TrimSpace(tag))
}

// RemoveTag returns tags without tag
func RemoveTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func appendIfNotExists(slice []string, item string) []string {
	if item == "" || contains(slice, item) {
		return slice
	}
	return append(slice, item)
}
