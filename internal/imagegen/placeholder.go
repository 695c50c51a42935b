package imagegen

import (
	"fmt"
	"hash/fnv"
	"html"
	"strings"
)

// Gradient pairs for placeholder backgrounds. The pair is chosen by a
// hash of the recipe name so the same recipe always gets the same look.
var gradientPalette = [][2]string{
	{"#f4a261", "#e76f51"},
	{"#2a9d8f", "#264653"},
	{"#e9c46a", "#f4a261"},
	{"#8ecae6", "#219ebc"},
	{"#cdb4db", "#6d597a"},
	{"#b7e4c7", "#40916c"},
}

const (
	placeholderSize = 1024
	maxLineRunes    = 22
	maxLines        = 5
)

// Placeholder synthesizes a local image for a recipe: a two-color
// gradient with the recipe name as wrapped text. It cannot fail and is
// the terminal tier of the fallback chain.
func Placeholder(recipeName string) EncodedImage {
	colors := gradientPalette[hashName(recipeName)%uint32(len(gradientPalette))]
	lines := wrapText(recipeName, maxLineRunes, maxLines)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		placeholderSize, placeholderSize, placeholderSize, placeholderSize)
	fmt.Fprintf(&sb, `<defs><linearGradient id="bg" x1="0" y1="0" x2="1" y2="1">`+
		`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`+
		`</linearGradient></defs>`, colors[0], colors[1])
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="url(#bg)"/>`, placeholderSize, placeholderSize)

	// Center the text block vertically around the middle of the canvas.
	lineHeight := 72
	startY := placeholderSize/2 - (len(lines)-1)*lineHeight/2
	sb.WriteString(`<text x="512" text-anchor="middle" fill="#ffffff" ` +
		`font-family="Georgia, serif" font-size="56" font-weight="bold">`)
	for i, line := range lines {
		fmt.Fprintf(&sb, `<tspan x="512" y="%d">%s</tspan>`, startY+i*lineHeight, html.EscapeString(line))
	}
	sb.WriteString(`</text></svg>`)

	return EncodedImage{
		MIMEType: "image/svg+xml",
		Data:     []byte(sb.String()),
	}
}

func hashName(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

// wrapText breaks text into lines of at most width runes on word
// boundaries, truncating to maxLines with an ellipsis.
func wrapText(text string, width, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{"Recipe"}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len([]rune(current))+1+len([]rune(word)) <= width {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += "…"
	}
	return lines
}
