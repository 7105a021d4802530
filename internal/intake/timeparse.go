package intake

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPattern  = regexp.MustCompile(`(\d{1,2})\s?(am|pm)`)
	afterPattern  = regexp.MustCompile(`after (\d{1,2})`)
	aroundPattern = regexp.MustCompile(`around (\d{1,2})`)
)

// dayPartHours maps informal day-part keywords to a representative hour.
// Checked in order; only consulted when no numeric pattern matched.
var dayPartHours = []struct {
	keyword string
	hour    int
}{
	{"morning", 10},
	{"afternoon", 14},
	{"evening", 18},
	{"night", 20},
}

// ExtractHour parses an informal time reference out of normalized query
// text into an hour of day. Rules apply in priority order and are mutually
// exclusive: an am/pm clock reference wins over "after N" and "around N",
// which win over day-part keywords. Returns ok=false when no rule matches.
func ExtractHour(text string) (hour int, ok bool) {
	if m := clockPattern.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "pm":
			if h != 12 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		}
		return h, true
	}
	if m := afterPattern.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		return h, true
	}
	if m := aroundPattern.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		return h, true
	}
	for _, part := range dayPartHours {
		if strings.Contains(text, part.keyword) {
			return part.hour, true
		}
	}
	return 0, false
}
