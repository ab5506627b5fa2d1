package report

import "strings"

// Entry is one recorded report line.
type Entry struct {
	Tag     Tag
	Message string
	Border  string
}

// Recorder keeps every line it receives. It is used by tests and by the
// bridge to print an end-of-run assertion summary.
type Recorder struct {
	entries []Entry
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Log implements Reporter.
func (r *Recorder) Log(message string, tag Tag, border ...string) {
	r.entries = append(r.entries, Entry{Tag: tag, Message: message, Border: borderOf(border)})
}

// Entries returns the recorded lines in arrival order.
func (r *Recorder) Entries() []Entry {
	return r.entries
}

// Messages returns "[TAG] message" renderings of every entry.
func (r *Recorder) Messages() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = "[" + string(e.Tag) + "] " + e.Message
	}
	return out
}

// Contains reports whether any entry message contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, e := range r.entries {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Summary counts PASS and FAIL entries.
func (r *Recorder) Summary() (passed, failed int) {
	for _, e := range r.entries {
		switch e.Tag {
		case TagPass:
			passed++
		case TagFail:
			failed++
		}
	}
	return passed, failed
}

// Reset drops all entries.
func (r *Recorder) Reset() {
	r.entries = nil
}
