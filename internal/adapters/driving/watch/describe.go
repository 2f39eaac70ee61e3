package watch

import (
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxSummary caps the derived summary, in runes.
const maxSummary = 200

var (
	mdCodeBlock  = regexp.MustCompile("(?s)```.*?```")
	mdInlineCode = regexp.MustCompile("`[^`]+`")
	mdImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdQuote      = regexp.MustCompile(`(?m)^>\s*`)
	mdRule       = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	mdBullet     = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)

	htmlTitle    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	htmlDrop     = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg)[^>]*>.*?</(script|style|noscript|head|svg)>`)
	htmlComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlBlock    = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
	paragraphGap = regexp.MustCompile(`\n\s*\n`)
)

// describe derives a title and summary for an upload from its name and, for
// text formats, its content.
func describe(name string, content []byte) (title, summary string) {
	title = titleFromName(name)
	if !utf8.Valid(content) {
		return title, ""
	}

	text := string(content)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		if h := markdownHeading(text); h != "" {
			title = h
		}
		text = stripMarkdown(text)
	case ".html", ".htm":
		if m := htmlTitle.FindStringSubmatch(text); m != nil {
			if t := strings.TrimSpace(html.UnescapeString(m[1])); t != "" {
				title = t
			}
		}
		text = stripHTML(text)
	case ".txt", ".text":
	default:
		return title, ""
	}
	return title, firstParagraph(text)
}

func titleFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.TrimSpace(base)
}

func markdownHeading(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

func stripMarkdown(text string) string {
	text = mdCodeBlock.ReplaceAllString(text, "")
	text = mdInlineCode.ReplaceAllString(text, "")
	text = mdImage.ReplaceAllString(text, "")
	text = mdLink.ReplaceAllString(text, "$1")
	// The title heading is already used.
	if h := markdownHeading(text); h != "" {
		text = strings.Replace(text, "# "+h, "", 1)
	}
	text = mdHeading.ReplaceAllString(text, "")
	text = mdQuote.ReplaceAllString(text, "")
	text = mdRule.ReplaceAllString(text, "")
	text = mdBullet.ReplaceAllString(text, "")
	return strings.NewReplacer("**", "", "__", "", "*", "").Replace(text)
}

func stripHTML(text string) string {
	text = htmlDrop.ReplaceAllString(text, "")
	text = htmlComment.ReplaceAllString(text, "")
	text = htmlBlock.ReplaceAllString(text, "\n\n")
	text = htmlTag.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}

// firstParagraph returns the first non-empty paragraph of text on one line,
// cut to maxSummary runes.
func firstParagraph(text string) string {
	for _, p := range paragraphGap.Split(text, -1) {
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			continue
		}
		if utf8.RuneCountInString(p) > maxSummary {
			r := []rune(p)
			p = strings.TrimSpace(string(r[:maxSummary-1])) + "…"
		}
		return p
	}
	return ""
}
