package common

import "testing"

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1288490, "1.23 MB"},
		{10 * 1024 * 1024, "10 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
	}
	for _, c := range cases {
		if got := FormatFileSize(c.bytes); got != c.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", c.bytes, got, c.want)
		}
	}
}
