package render

import (
	"bytes"
	"html"
	"strings"
)

type metaField struct {
	key, value string
}

// splitFrontmatter separates a closed leading "---" block from the body. An
// unterminated block is left in the body.
func splitFrontmatter(src []byte) ([]metaField, []byte) {
	lines := bytes.Split(src, []byte("\n"))
	if len(lines) == 0 || strings.TrimSpace(string(lines[0])) != "---" {
		return nil, src
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(string(lines[i])) != "---" {
			continue
		}
		var fields []metaField
		for _, l := range lines[1:i] {
			key, value, ok := strings.Cut(string(l), ":")
			if !ok {
				continue
			}
			fields = append(fields, metaField{strings.TrimSpace(key), strings.TrimSpace(value)})
		}
		return fields, bytes.Join(lines[i+1:], []byte("\n"))
	}
	return nil, src
}

func metaTable(fields []metaField) string {
	var b strings.Builder
	b.WriteString("<table class=\"frontmatter\">\n<tbody>\n")
	for _, f := range fields {
		b.WriteString("<tr><th>")
		b.WriteString(html.EscapeString(f.key))
		b.WriteString("</th><td>")
		b.WriteString(html.EscapeString(f.value))
		b.WriteString("</td></tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
	return b.String()
}
