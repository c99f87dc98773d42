// Package input prepares text and key events for `adb shell input`.
package input

import "strings"

// escapes maps characters that `input text` mangles or that the device
// shell would interpret. Space becomes %s per the input tool's convention.
var escapes = map[rune]string{
	' ':  "%s",
	'&':  `\&`,
	'<':  `\<`,
	'>':  `\>`,
	'(':  `\(`,
	')':  `\)`,
	';':  `\;`,
	'|':  `\|`,
	'*':  `\*`,
	'~':  `\~`,
	'\'': `\'`,
	'"':  `\"`,
	'#':  `\#`,
	'%':  `\%`,
	'!':  `\!`,
	'?':  `\?`,
	':':  `\:`,
	'/':  `\/`,
	'\\': `\\`,
}

// SanitizeText escapes text for `adb shell input text`. Covers the common
// cases, not every shell under the sun.
func SanitizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if esc, ok := escapes[r]; ok {
			b.WriteString(esc)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
