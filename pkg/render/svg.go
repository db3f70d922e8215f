package render

import (
	"bytes"
	"fmt"
)

// titleOffset is the vertical space reserved above the content when a title
// is present; the content is shifted down by this amount.
const titleOffset = 40.0

// titleBaseline is the baseline Y of the title text.
const titleBaseline = 24.0

// document wraps rendered body content into a complete SVG document: the
// root element, a full-canvas white background, and (when a title is set)
// the title text with the body translated below it.
func document(body []byte, width, height float64, title string, t Theme) []byte {
	totalH := height
	if title != "" {
		totalH += titleOffset
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.1f" height="%.1f">`+"\n",
		width, totalH, width, totalH)
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", width, totalH)

	if title != "" {
		fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f" font-family='%s' font-size="%.1f" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`+"\n",
			width/2, titleBaseline, t.FontFamily, titleFontSize, defaultTextColor, escapeXML(title))
		fmt.Fprintf(&buf, `<g transform="translate(0, %.0f)">`+"\n", titleOffset)
	}

	buf.Write(body)

	if title != "" {
		buf.WriteString("</g>\n")
	}
	buf.WriteString("</svg>")
	return buf.Bytes()
}
