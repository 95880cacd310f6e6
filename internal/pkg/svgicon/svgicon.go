// Package svgicon generates placeholder icons, a letter on a colored square.
package svgicon

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const (
	DefaultSize   = 40
	DefaultRadius = 1
	DefaultColor  = "#000000"
	TextColor     = "#FFFFFF"
	FontFamily    = "'Source Sans Pro', Verdana, Arial, Helvetica, sans-serif"
)

var colorRegexp = regexp.MustCompile(`^#[0-9a-f]{6}$`)

const template = `<svg xmlns="http://www.w3.org/2000/svg"
     width="%[1]d" height="%[1]d" viewBox="0 0 %[1]d %[1]d"
     role="img" aria-label="%[2]s">
  <rect x="0" y="0" width="%[1]d" height="%[1]d" rx="%[3]d" fill="%[4]s" />
  <text x="%[5]s" y="%[6]s" text-anchor="middle"
        font-family="%[7]s"
        font-size="%[8]d" font-weight="700" fill="%[9]s">%[2]s</text>
</svg>
`

// Generate SVG icon with the first letter of the text.
func Generate(text, color string, size, radius int) (string, error) {
	normalized, err := NormalizeColor(color)
	if err != nil {
		return "", err
	}

	fontSize := int(math.Round(float64(size) * 0.75))
	center := float64(size) / 2.2
	baseline := center + float64(fontSize)*0.35
	label := html.EscapeString(Letter(text))

	return fmt.Sprintf(
		template,
		size,
		label,
		radius,
		html.EscapeString(normalized),
		formatFloat(center),
		formatFloat(baseline),
		FontFamily,
		fontSize,
		TextColor,
	), nil
}

// NormalizeColor converts a CSS hex color to the "#rrggbb" form.
// Empty color is black, "#" is optional, the short "#rgb" form is expanded.
func NormalizeColor(color string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(color))
	if c == "" {
		return DefaultColor, nil
	}
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	if len(c) == 4 {
		c = string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
	}
	if !colorRegexp.MatchString(c) {
		return "", errors.Errorf(`invalid element color "%s"`, color)
	}
	return c, nil
}

// Letter returns the first letter in upper case, or "?".
func Letter(text string) string {
	for _, r := range strings.TrimSpace(text) {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// formatFloat formats the number with 14 significant digits, without trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 14, 64)
}
