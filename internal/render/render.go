// Package render holds the text processing used by the page renderers and
// the feed: paragraph splitting, keyword extraction and markdown rendering.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sp3dr4/folio/internal/domain"
)

const (
	DescriptionLength = 160
	KeywordCount      = 5
)

// Block is one rendered line of post content. Level 0 is a paragraph,
// 1 to 3 a heading.
type Block struct {
	Level int
	Text  string
}

func (b Block) IsHeading() bool {
	return b.Level > 0
}

// SplitParagraphs turns post content into blocks, one per non-blank line.
func SplitParagraphs(content string) []Block {
	lines := strings.Split(content, "\n")
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, Block{Level: 1, Text: line[2:]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Level: 2, Text: line[3:]})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Block{Level: 3, Text: line[4:]})
		default:
			blocks = append(blocks, Block{Text: line})
		}
	}
	return blocks
}

// ExtractKeywords returns the n most frequent words of content longer than
// two characters. Ties keep first-occurrence order.
func ExtractKeywords(content string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(content))

	counts := map[string]int{}
	order := []string{}
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r >= '가' && r <= '힣':
		return true
	}
	return false
}

// Description is the excerpt, or the first 160 characters of the content.
func Description(post *domain.Post) string {
	if post == nil {
		return ""
	}
	if post.Excerpt != "" {
		return post.Excerpt
	}
	return truncateRunes(post.Content, DescriptionLength)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// ViewsLabel renders a view count such as "1,234 views". Zero renders nothing.
func ViewsLabel(n int) string {
	if n <= 0 {
		return ""
	}
	return humanize.Comma(int64(n)) + " views"
}

// Date formats t the way the Korean locale writes a long date.
func Date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006년 1월 2일")
}

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if isWordRune(r) && r != '_' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// MarkdownToHTML renders content as GitHub flavoured markdown.
func MarkdownToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
