// Package resolve extracts the semantic fields of a log record by probing
// ordered lists of alias keys.
package resolve

import (
	"github.com/ccollicutt/prettylog/pkg/record"
)

// Slot names one semantic field.
type Slot int

const (
	Time Slot = iota
	Severity
	RequestID
	Message

	numSlots
)

// Slots returns the slots in resolution order.
func Slots() []Slot {
	return []Slot{Time, Severity, RequestID, Message}
}

// String returns the config name of the slot.
func (s Slot) String() string {
	switch s {
	case Time:
		return "time"
	case Severity:
		return "severity"
	case RequestID:
		return "request_id"
	case Message:
		return "message"
	default:
		return "unknown"
	}
}

// Aliases holds the candidate keys for each slot, highest priority first.
type Aliases [numSlots][]string

// DefaultAliases returns the built-in alias table.
func DefaultAliases() Aliases {
	return Aliases{
		Time:      {"timestamp", "time", "ts", "@timestamp"},
		Severity:  {"severity", "level", "levelname"},
		RequestID: {"request_id", "requestId", "trace_id", "x-request-id"},
		Message:   {"message", "msg", "log"},
	}
}

// Keys read outside the alias table.
const (
	// ExceptionKey holds a formatted exception that belongs to the message.
	ExceptionKey = "exc_info"

	// ContextKey names a nested object that may carry the request or
	// process id when no top-level alias does.
	ContextKey = "context"

	// ContextProcessIDKey and ContextRequestIDKey are the Resolved.Key
	// values of ids taken from the context object.
	ContextProcessIDKey = ContextKey + ".processId"
	ContextRequestIDKey = ContextKey + ".requestId"
)

// Resolved is one filled slot.
type Resolved struct {
	Key   string
	Value record.Value
}

// Fields is the outcome of resolving a record. A nil slot pointer means
// the record had none of that slot's aliases.
type Fields struct {
	Time      *Resolved
	Severity  *Resolved
	RequestID *Resolved
	Message   *Resolved

	// Exception is set only alongside Message.
	Exception *Resolved

	// Leftover holds the unclaimed entries in their original order.
	Leftover []record.Field
}

// Get returns the slot's resolved value, or nil when absent.
func (f *Fields) Get(slot Slot) *Resolved {
	switch slot {
	case Time:
		return f.Time
	case Severity:
		return f.Severity
	case RequestID:
		return f.RequestID
	case Message:
		return f.Message
	default:
		return nil
	}
}

func (f *Fields) set(slot Slot, r *Resolved) {
	switch slot {
	case Time:
		f.Time = r
	case Severity:
		f.Severity = r
	case RequestID:
		f.RequestID = r
	case Message:
		f.Message = r
	}
}

// Resolver maps records onto Fields using an alias table.
type Resolver struct {
	aliases Aliases
}

// New creates a Resolver. Slots with an empty alias list never resolve.
func New(aliases Aliases) *Resolver {
	var copied Aliases
	for i := range aliases {
		copied[i] = append([]string(nil), aliases[i]...)
	}
	return &Resolver{aliases: copied}
}

// Aliases returns the table the resolver uses.
func (r *Resolver) Aliases() Aliases {
	return r.aliases
}

// Resolve fills each slot with the first alias present in obj. A key
// claimed by an earlier slot is skipped by later ones. With a message,
// exc_info is claimed as its exception. Without a request id alias, a
// string processId or requestId inside the context object is used; the
// context object itself stays in Leftover.
func (r *Resolver) Resolve(obj *record.Object) Fields {
	var fields Fields
	claimed := make(map[string]bool, numSlots)

	for _, slot := range Slots() {
		for _, key := range r.aliases[slot] {
			if claimed[key] {
				continue
			}
			value, ok := obj.Get(key)
			if !ok {
				continue
			}
			claimed[key] = true
			fields.set(slot, &Resolved{Key: key, Value: value})
			break
		}
	}

	if fields.Message != nil && !claimed[ExceptionKey] {
		if value, ok := obj.Get(ExceptionKey); ok {
			claimed[ExceptionKey] = true
			fields.Exception = &Resolved{Key: ExceptionKey, Value: value}
		}
	}

	if fields.RequestID == nil {
		fields.RequestID = contextID(obj)
	}

	fields.Leftover = make([]record.Field, 0, obj.Len()-len(claimed))
	for _, f := range obj.Fields() {
		if !claimed[f.Key] {
			fields.Leftover = append(fields.Leftover, f)
		}
	}

	return fields
}

// contextID reads the process id, then the request id, from the context
// object. Non-string ids are ignored.
func contextID(obj *record.Object) *Resolved {
	value, ok := obj.Get(ContextKey)
	if !ok {
		return nil
	}
	nested, ok := value.AsObject()
	if !ok {
		return nil
	}
	for _, id := range []struct{ name, key string }{
		{"processId", ContextProcessIDKey},
		{"requestId", ContextRequestIDKey},
	} {
		v, ok := nested.Get(id.name)
		if !ok {
			continue
		}
		if _, isString := v.AsString(); isString {
			return &Resolved{Key: id.key, Value: v}
		}
	}
	return nil
}
