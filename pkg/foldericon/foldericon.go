// Package foldericon renders the placeholder SVG shown for folders that have
// no cover image.
package foldericon

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// palette is the set of pastel fills an icon can get. The pick is a hash of
// the folder name, so the same folder always renders the same color.
var palette = []string{
	"#FF9AA2",
	"#FFB7B2",
	"#FFDAC1",
	"#E2F0CB",
	"#B5EAD7",
	"#C7CEEA",
}

// Render returns an inline SVG for the folder: a colored folder shape with
// the name's first letter.
func Render(name string) string {
	color := palette[colorIndex(name)]
	letter := firstLetter(name)

	svg := fmt.Sprintf(`<svg width="100" height="100" viewBox="0 0 100 100">`+
		`<rect x="10" y="20" width="80" height="70" rx="5" fill="%s"/>`+
		`<rect x="10" y="30" width="80" height="10" fill="%s" opacity="0.7"/>`+
		`<text x="50" y="65" font-family="Arial" font-size="40" text-anchor="middle" fill="#fff">%s</text>`+
		`</svg>`, color, color, letter)
	return svg
}

func colorIndex(name string) int {
	h := fnv.New32a()
	h.Write([]byte(name))
	return int(h.Sum32() % uint32(len(palette)))
}

func firstLetter(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return "?"
}
