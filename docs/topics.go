// Package docs embeds the user documentation topics shown by `wt topic`.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var topics embed.FS

// GetTopic returns the content of one documentation topic. The special topic
// "*" concatenates all of them.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(all...)
	}
	content, err := topics.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics concatenates the content of several topics, expanding "*".
func GetTopics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		if name == "*" {
			all, err := GetAllTopics()
			if err != nil {
				return "", err
			}
			content, err := GetTopics(all...)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			continue
		}
		content, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics lists the available topic names, sorted. The readme is the
// index of topics, not a topic itself.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(topics, "*.md")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range files {
		name := strings.TrimSuffix(f, ".md")
		if name == "readme" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
