// Package report defines the reporting collaborator consumed by the runner
// and assertion engine, plus the stock implementations.
//
// Anything that needs "a reporter" depends on the Reporter interface only.
package report

// Tag classifies a report line.
type Tag string

// Tags understood by the stock reporters. Other tags are printed verbatim.
const (
	TagPass  Tag = "PASS"
	TagFail  Tag = "FAIL"
	TagInfo  Tag = "INFO"
	TagTrue  Tag = "TRUE"
	TagFalse Tag = "FALSE"
)

// Reporter receives human-oriented progress and assertion messages.
// border, when given, is a decoration line drawn around the message.
type Reporter interface {
	Log(message string, tag Tag, border ...string)
}

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Log(string, Tag, ...string) {}

// Tee fans every message out to all reporters in order.
func Tee(reporters ...Reporter) Reporter {
	return tee(reporters)
}

type tee []Reporter

func (t tee) Log(message string, tag Tag, border ...string) {
	for _, r := range t {
		r.Log(message, tag, border...)
	}
}

// borderOf returns the first border argument, or "".
func borderOf(border []string) string {
	if len(border) == 0 {
		return ""
	}
	return border[0]
}
