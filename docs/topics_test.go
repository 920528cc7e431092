package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures the documentation stays in sync with itself:
	// 1. Every topic listed in readme.md loads through GetTopic.
	// 2. Every .md file (except readme.md) is listed in readme.md.

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	if len(topicsInReadme) == 0 {
		t.Fatal("readme.md lists no topics")
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".md")
		if name == "readme" {
			continue
		}
		found := false
		for _, topic := range topicsInReadme {
			if topic == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestGetAllTopicsExpansion(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*): %v", err)
	}
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics: %v", err)
	}
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatalf("GetTopic(%q): %v", topic, err)
		}
		if !strings.Contains(all, content) {
			t.Errorf("expansion of * is missing topic %q", topic)
		}
	}
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("GetTopic accepted an unknown topic")
	}
}

func TestCodeBlocks(t *testing.T) {
	// Every fenced code block in the docs must declare its language, and
	// every sh block must be non-empty tlc invocations (possibly with
	// environment assignments or backgrounding).
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read %s: %v", file, err)
			}
			root := goldmark.DefaultParser().Parse(text.NewReader(content))

			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				fcb, ok := n.(*ast.FencedCodeBlock)
				if !ok {
					return ast.WalkContinue, nil
				}
				if fcb.Info == nil {
					t.Error("fenced code block without a language tag")
					return ast.WalkContinue, nil
				}
				lang := string(fcb.Info.Segment.Value(content))
				if lang != "sh" {
					t.Errorf("unexpected code block language %q", lang)
					return ast.WalkContinue, nil
				}
				for i := 0; i < fcb.Lines().Len(); i++ {
					seg := fcb.Lines().At(i)
					line := strings.TrimSpace(string(seg.Value(content)))
					if line == "" || strings.HasPrefix(line, "#") {
						continue
					}
					if !strings.Contains(line, "tlc ") {
						t.Errorf("sh block line %q does not invoke tlc", line)
					}
				}
				return ast.WalkContinue, nil
			})
		})
	}
}
