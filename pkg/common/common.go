package common

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a raw byte count as a human readable string such
// as "1.23 MB". The result is computed once at upload time and stored with
// the catalog record.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	// Trim trailing zeros the way %g would, but keep at most two decimals.
	s := fmt.Sprintf("%.2f", value)
	if s[len(s)-3:] == ".00" {
		s = s[:len(s)-3]
	} else if s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s + " " + sizeUnits[i]
}
