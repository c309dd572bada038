// Package docs holds the user manual of the fx tool, one markdown topic per
// file.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed *.md
var docs embed.FS

// GetTopic returns the content of a documentation topic. "*" returns all
// of them.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}

	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of multiple documentation topics concatenated together.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns a list of all available documentation topics.
func GetAllTopics() ([]string, error) {
	var topics []string
	err := fs.WalkDir(docs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if base == "readme" {
			return nil
		}
		topics = append(topics, base)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(topics)
	return topics, nil
}

// Title returns the text of the first heading of a topic, or the topic name
// if it has none.
func Title(topic string) (string, error) {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	title := topic
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(content))
			} else if cs, ok := c.(*ast.CodeSpan); ok {
				for cc := cs.FirstChild(); cc != nil; cc = cc.NextSibling() {
					if t, ok := cc.(*ast.Text); ok {
						b.Write(t.Segment.Value(content))
					}
				}
			}
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			title = s
		}
		return ast.WalkStop, nil
	})
	return title, nil
}

// Index returns the list of all topics with their title, in markdown.
func Index() (string, error) {
	topics, err := GetAllTopics()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("# Topics\n\n")
	for _, topic := range topics {
		title, err := Title(topic)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "* %s: %s\n", topic, title)
	}
	return b.String(), nil
}
