package classify

import (
	"strings"
	"unicode"
)

// latin1Suspects are Latin-1 punctuation and accented capitals that show up
// in bulk when Shift_JIS or UTF-8 bytes are decoded as ISO-8859-1.
const latin1Suspects = "¡¢£¤¥¦§¨©ª«¬­®¯°±²³´µ¶·¸¹º»¼½¾¿ÀÁÂÃÄÅÆÇÈÉÊËÌÍÎÏ"

// IsGarbled reports whether text looks like a mis-decoded byte stream.
// Detection is diagnostic only; callers keep the text as it is.
func (c *Classifier) IsGarbled(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	var total, highByte, latin1, lateLatin int
	hasMarker := false
	for _, r := range text {
		total++
		switch {
		case r == unicode.ReplacementChar:
			return true
		case unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t':
			return true
		}
		if r > 127 && r < 256 {
			highByte++
		}
		if r > 200 && r < 256 {
			lateLatin++
		}
		if strings.ContainsRune(latin1Suspects, r) {
			latin1++
		}
		if r == '#' || r == '?' {
			hasMarker = true
		}
	}

	if float64(highByte)/float64(total) > c.config.GarbledHighByteRatio {
		return true
	}
	if hasMarker && lateLatin > 0 {
		return true
	}
	return float64(latin1)/float64(total) > c.config.GarbledLatin1Ratio
}
