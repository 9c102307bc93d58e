// Package markdown 拉取文本资料并把受限的 Markdown 子集渲染为 HTML。
//
// 支持：``` 代码块、# / ## / ### 标题、**粗体**、*斜体*、`行内代码`、
// "* " 列表项、[文本](链接)。其余内容按段落输出，段内单个换行转为 <br>。
package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	fencedCodeRe = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)[ \t]*\n?(.*?)```")
	h1Re         = regexp.MustCompile(`(?m)^# (.+)$`)
	h2Re         = regexp.MustCompile(`(?m)^## (.+)$`)
	h3Re         = regexp.MustCompile(`(?m)^### (.+)$`)
	boldRe       = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^\s*][^*\n]*?)\*`)
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")
	listItemRe   = regexp.MustCompile(`(?m)^\* (.+)$`)
	listGroupRe  = regexp.MustCompile(`(?m)(?:^<li>.*</li>(?:\n|$))+`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	paragraphRe  = regexp.MustCompile(`\n{2,}`)
	blockTagRe   = regexp.MustCompile(`<(h[1-6]|ul|ol|li|pre|blockquote)[\s>]`)
)

// 代码块占位符，渲染结束后再替换回去，避免代码内容被行内规则二次处理
const codePlaceholder = "\x00CODEBLOCK%d\x00"

// Render 依次处理：代码块、标题、粗体、斜体、行内代码、列表、链接，最后按空行切分段落
func Render(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []string
	text = fencedCodeRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := fencedCodeRe.FindStringSubmatch(m)
		lang, code := sub[1], strings.TrimRight(sub[2], "\n")
		class := ""
		if lang != "" {
			class = fmt.Sprintf(` class="language-%s"`, lang)
		}
		blocks = append(blocks, fmt.Sprintf("<pre><code%s>%s</code></pre>", class, html.EscapeString(code)))
		return "\n\n" + fmt.Sprintf(codePlaceholder, len(blocks)-1) + "\n\n"
	})

	text = html.EscapeString(text)

	text = h3Re.ReplaceAllString(text, "<h3>$1</h3>")
	text = h2Re.ReplaceAllString(text, "<h2>$1</h2>")
	text = h1Re.ReplaceAllString(text, "<h1>$1</h1>")
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRe.ReplaceAllString(text, "<em>$1</em>")
	text = inlineCodeRe.ReplaceAllString(text, "<code>$1</code>")
	text = listItemRe.ReplaceAllString(text, "<li>$1</li>")
	text = listGroupRe.ReplaceAllStringFunc(text, func(m string) string {
		return "<ul>\n" + strings.TrimRight(m, "\n") + "\n</ul>\n"
	})
	text = linkRe.ReplaceAllStringFunc(text, renderLink)

	var out []string
	for _, block := range paragraphRe.Split(strings.TrimSpace(text), -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if strings.Contains(block, "\x00") || blockTagRe.MatchString(block) {
			out = append(out, block)
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(block, "\n", "<br>")+"</p>")
	}
	result := strings.Join(out, "\n")

	for i, b := range blocks {
		result = strings.Replace(result, fmt.Sprintf(codePlaceholder, i), b, 1)
	}
	return result
}

// renderLink 文本已经过转义；不安全的协议只输出链接文字
func renderLink(m string) string {
	sub := linkRe.FindStringSubmatch(m)
	label, href := sub[1], sub[2]
	if !safeHref(html.UnescapeString(href)) {
		return label
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, href, label)
}

func safeHref(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, bad := range []string{"javascript:", "vbscript:", "data:"} {
		if strings.HasPrefix(lower, bad) {
			return false
		}
	}
	return true
}
