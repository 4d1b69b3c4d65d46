package event

import "strings"

// Result is the aggregate view of a finished (or failed) run, assembled
// from its events.
type Result struct {
	Metadata    *Metadata
	Statuses    []string
	Transcript  string
	Paraphrase  string
	Translation string
	Tags        []string
	Err         string
	Done        bool

	transcript  strings.Builder
	translation strings.Builder
}

// Apply folds one event into the result
func (r *Result) Apply(ev Event) {
	switch ev.Type {
	case TypeStatus:
		r.Statuses = append(r.Statuses, ev.Message)
		if ev.Message == DoneMessage {
			r.Done = true
		}
	case TypeMetadata:
		r.Metadata = ev.Metadata
	case TypeContent:
		r.transcript.WriteString(ev.Text)
		r.Transcript = r.transcript.String()
	case TypeParaphrase:
		r.Paraphrase = ev.Text
	case TypeTranslation:
		r.translation.WriteString(ev.Text)
		r.Translation = r.translation.String()
	case TypeTags:
		r.Tags = ev.Tags
	case TypeError:
		r.Err = ev.Message
	}
}

// Collect drains events into a Result
func Collect(events <-chan Event) *Result {
	r := &Result{}
	for ev := range events {
		r.Apply(ev)
	}
	return r
}
