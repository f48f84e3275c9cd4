package parser

import (
	"regexp"
	"strings"
)

// combinedPattern matches one combined access log line:
//
//	IP RFC USER [TIMESTAMP] "METHOD URL PROTOCOL" STATUS SIZE "REFERER" "USER_AGENT"
//
// The request segment may be the literal "-", the timestamp may be "-", and
// the referer/user agent pair may be missing. Text after the last matched
// group is ignored.
var combinedPattern = regexp.MustCompile(
	`^(?P<ip>\S+) (?P<rfc>\S+) (?P<user>\S+)` +
		` (?:\[(?P<timestamp>[^\]]*)\]|-)` +
		` "(?:(?P<method>\S+) (?P<url>\S+) (?P<protocol>\S+)|-)"` +
		` (?P<status>\S+) (?P<size>\S+)` +
		`(?:\s+"(?P<referer>(?:[^"\\]|\\.)*)" "(?P<user_agent>(?:[^"\\]|\\.)*)")?`,
)

// RawFields holds the raw substrings captured from one line.
// Optional groups that did not participate are empty.
type RawFields struct {
	IP        string
	RFC       string
	User      string
	Timestamp string
	Method    string
	URL       string
	Protocol  string
	Status    string
	Size      string
	Referer   string
	UserAgent string
}

// Grammar extracts RawFields from access log lines
type Grammar struct {
	pattern *regexp.Regexp
	groups  map[string]int
}

// NewGrammar creates a Grammar for the combined log format
func NewGrammar() *Grammar {
	groups := make(map[string]int)
	for i, name := range combinedPattern.SubexpNames() {
		if name != "" {
			groups[name] = i
		}
	}
	return &Grammar{
		pattern: combinedPattern,
		groups:  groups,
	}
}

// Match extracts the raw fields of a line. A line that does not match
// returns a *ParseError of kind ErrMalformedLine.
func (g *Grammar) Match(line string) (RawFields, error) {
	line = strings.TrimRight(line, "\r\n")

	m := g.pattern.FindStringSubmatch(line)
	if m == nil {
		return RawFields{}, malformedLine(line)
	}

	get := func(name string) string {
		return m[g.groups[name]]
	}

	return RawFields{
		IP:        get("ip"),
		RFC:       get("rfc"),
		User:      get("user"),
		Timestamp: get("timestamp"),
		Method:    get("method"),
		URL:       get("url"),
		Protocol:  get("protocol"),
		Status:    get("status"),
		Size:      get("size"),
		Referer:   get("referer"),
		UserAgent: get("user_agent"),
	}, nil
}
