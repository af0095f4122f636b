package chat

import "regexp"

type SegmentKind string

const (
	SegmentText    SegmentKind = "text"
	SegmentService SegmentKind = "service"
)

// Segment is either a run of markdown text or a link to a service page.
type Segment struct {
	Kind      SegmentKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	ServiceID string      `json:"service_id,omitempty"`
	Href      string      `json:"href,omitempty"`
}

var serviceLink = regexp.MustCompile(`\[SERVICE:([\w-]+)\]`)

// ParseSegments splits assistant output on [SERVICE:<id>] markers. Empty
// text runs between markers are dropped.
func ParseSegments(content string) []Segment {
	matches := serviceLink.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		if content == "" {
			return []Segment{}
		}
		return []Segment{{Kind: SegmentText, Text: content}}
	}

	out := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			out = append(out, Segment{Kind: SegmentText, Text: content[last:m[0]]})
		}
		id := content[m[2]:m[3]]
		out = append(out, Segment{Kind: SegmentService, ServiceID: id, Href: "/services/" + id})
		last = m[1]
	}
	if last < len(content) {
		out = append(out, Segment{Kind: SegmentText, Text: content[last:]})
	}
	return out
}
