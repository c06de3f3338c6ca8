// Package delivery derives the preview and download URL variants for a
// stored document from the object store's canonical retrieval URL.
//
// The object store serves image-processable assets through a transformable
// path segment and raw byte streams through a raw one. Document bytes must
// never pass through transformation, so the PDF variants rewrite the path
// to the raw form. Inline vs. attachment disposition cannot both be baked
// into a single stored object, which is why two URL variants exist and the
// serving endpoints re-assert the matching headers per request.
package delivery

import (
	"fmt"
	"strings"
)

const (
	processedSegment = "/image/upload/"
	rawSegment       = "/raw/upload/"

	// AttachmentMarker is the query parameter that forces attachment
	// disposition on the object store's CDN.
	AttachmentMarker = "fl_attachment=true"
)

// URLs holds the two derived delivery variants for one stored object.
type URLs struct {
	Preview  string `json:"preview"`
	Download string `json:"download"`
}

// Derive produces the preview and download URLs for a canonical URL and a
// classified extension. Non-PDF types need no rewriting; both variants
// equal the canonical URL.
func Derive(canonicalURL, extension string) URLs {
	if strings.ToLower(extension) != ".pdf" {
		return URLs{Preview: canonicalURL, Download: canonicalURL}
	}

	base := rawBase(canonicalURL)
	return URLs{
		Preview:  base,
		Download: appendQuery(base, AttachmentMarker),
	}
}

// rawBase rewrites the first processed-upload path segment to the raw form.
// URLs already in raw form pass through untouched so the rewrite never
// doubles the segment.
func rawBase(canonicalURL string) string {
	if strings.Contains(canonicalURL, rawSegment) {
		return canonicalURL
	}
	return strings.Replace(canonicalURL, processedSegment, rawSegment, 1)
}

func appendQuery(u, param string) string {
	if strings.Contains(u, "?") {
		return u + "&" + param
	}
	return u + "?" + param
}

// InlineDisposition builds the Content-Disposition header value for the
// preview endpoint.
func InlineDisposition(fileName string) string {
	return fmt.Sprintf("inline; filename=%q", fileName)
}

// AttachmentDisposition builds the Content-Disposition header value for the
// download endpoint.
func AttachmentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q", fileName)
}
