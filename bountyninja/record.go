package bountyninja

import (
	"strconv"
	"time"

	"github.com/stackerstan/go-nostr"
)

// Record is our locally typed view of a signed nostr event. Records are
// append-only: supersession and cancellation are expressed by publishing new
// records, never by mutating old ones.
type Record struct {
	ID        S256Hash
	PubKey    Account
	CreatedAt time.Time
	Kind      int64
	Tags      nostr.Tags
	Content   string
	Sig       string
}

//GetSingleTag returns the value of the first tag that matches t string.
func (r *Record) GetSingleTag(t string) (value string, ok bool) {
	for _, tag := range r.Tags {
		if len(tag) > 1 {
			if tag[0] == t {
				if len(tag[1]) > 0 {
					return tag[1], true
				}
			}
		}
	}
	return
}

func (r *Record) GetTags(t string) (value []string, ok bool) {
	for _, tag := range r.Tags {
		if len(tag) > 1 && tag[0] == t {
			ok = true
			value = append(value, tag[1])
		}
	}
	return
}

// GetInt64Tag parses the first matching tag value as a base 10 integer.
func (r *Record) GetInt64Tag(t string) (int64, bool) {
	if v, ok := r.GetSingleTag(t); ok {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// TaskAddress returns the task address in the first "a" tag, if any.
func (r *Record) TaskAddress() (TaskAddress, bool) {
	if v, ok := r.GetSingleTag("a"); ok {
		if a, err := ParseTaskAddress(v); err == nil {
			return a, true
		}
	}
	return TaskAddress{}, false
}

func (r *Record) CheckSignature() (bool, error) {
	n := r.Nostr()
	return n.CheckSignature()
}

func (r *Record) Nostr() nostr.Event {
	return nostr.Event{
		ID:        r.ID,
		PubKey:    r.PubKey,
		CreatedAt: r.CreatedAt,
		Kind:      int(r.Kind),
		Tags:      r.Tags,
		Content:   r.Content,
		Sig:       r.Sig,
	}
}

//ConvertToRecord parses a nostr event and converts it to a locally typed Record
func ConvertToRecord(evt *nostr.Event) Record {
	return Record{
		ID:        evt.ID,
		PubKey:    evt.PubKey,
		CreatedAt: evt.CreatedAt,
		Kind:      int64(evt.Kind),
		Tags:      evt.Tags,
		Content:   evt.Content,
		Sig:       evt.Sig,
	}
}
