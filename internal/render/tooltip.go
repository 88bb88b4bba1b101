package render

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
)

// Tooltip limits.
const (
	MaxDescription = 500
	TooltipWidth   = 44 // text columns inside the box
	NoDescription  = "No description available."
)

var (
	markdown = goldmark.New()
	numbers  = message.NewPrinter(language.English)
)

// LineStyle selects how a tooltip line is painted.
type LineStyle int

const (
	StyleBody LineStyle = iota
	StyleTitle
	StyleMeta
	StyleLink
)

// TooltipLine is one row of the hover popup.
type TooltipLine struct {
	Text  string
	Style LineStyle
	Link  string
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return numbers.Sprintf("%d", n)
}

// PlainText reduces markdown to readable text: links keep their label,
// paragraphs and line breaks become newlines, markup is dropped.
func PlainText(md string) string {
	src := []byte(md)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(src))
				if node.HardLineBreak() || node.SoftLineBreak() {
					sb.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				sb.Write(node.Label(src))
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					sb.Write(seg.Value(src))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if !entering {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// Truncate shortens s to at most limit characters, cutting at the last
// space at or before the limit when there is one, and marks the cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	cut := -1
	for i := min(limit, len(runes)-1); i >= 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	if cut == -1 {
		cut = limit
	}
	return string(runes[:cut]) + "..."
}

// Description prepares an item description for display.
func Description(desc string) string {
	plain := PlainText(desc)
	if plain == "" {
		return NoDescription
	}
	return Truncate(plain, MaxDescription)
}

// Wrap breaks s into lines of at most width display columns. Existing
// newlines are kept; words longer than width are split.
func Wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for runewidth.StringWidth(w) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(w)
					head = w[:size]
				}
				out = append(out, head)
				w = w[len(head):]
			}
			switch {
			case w == "":
			case line == "":
				line = w
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(w) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// TooltipLines lays out the hover popup for an item at the given width.
func TooltipLines(it *catalog.Item, width int) []TooltipLine {
	var lines []TooltipLine
	add := func(s string, style LineStyle, link string) {
		for _, l := range Wrap(s, width) {
			lines = append(lines, TooltipLine{Text: l, Style: style, Link: link})
		}
	}

	add(it.Name, StyleTitle, "")
	if it.Organization != "" {
		add("Organization: "+it.Organization, StyleMeta, "")
	}
	add(Description(it.Description), StyleBody, "")
	lines = append(lines, TooltipLine{})
	add("★ "+FormatCount(it.Stars)+" stars", StyleMeta, "")
	if it.Category != "" {
		add(it.Category+" language", StyleMeta, "")
	}
	add("Created on "+it.CreatedAt.UTC().Format("January 2, 2006"), StyleMeta, "")
	if it.URL != "" {
		add("View on GitHub", StyleLink, it.URL)
	}
	return lines
}
