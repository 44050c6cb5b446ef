package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one row-representing object of a model. Attribute values are
// keyed by field name; a relation field holds the raw foreign key value,
// while related records that were loaded explicitly are cached alongside.
//
// Records are not safe for concurrent mutation.
type Record struct {
	model   *Model
	values  map[string]any
	related map[string]*Record
}

// Model returns the record's model.
func (r *Record) Model() *Model { return r.model }

// Get returns the attribute value of a field, or nil if unset.
func (r *Record) Get(name string) any {
	return r.values[name]
}

// Has reports whether an attribute was set, even to nil.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Set assigns an attribute. Assigning a *Record to a relation field is the
// same as SetRelated.
func (r *Record) Set(name string, value any) {
	if rel, ok := value.(*Record); ok {
		r.SetRelated(name, rel)
		return
	}
	if r.values == nil {
		r.values = make(map[string]any)
	}
	r.values[name] = value
	if r.related != nil {
		if cached, ok := r.related[name]; ok && cached.PK() != value {
			delete(r.related, name)
		}
	}
}

// PK returns the primary key value.
func (r *Record) PK() any {
	return r.values[r.model.PrimaryKey().Name]
}

// SetPK assigns the primary key value.
func (r *Record) SetPK(value any) {
	r.Set(r.model.PrimaryKey().Name, value)
}

// Related returns the loaded record of a relation field, if any.
func (r *Record) Related(name string) (*Record, bool) {
	rel, ok := r.related[name]
	return rel, ok && rel != nil
}

// SetRelated caches a loaded related record and stores its primary key as
// the raw foreign key value.
func (r *Record) SetRelated(name string, rel *Record) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if r.related == nil {
		r.related = make(map[string]*Record)
	}
	if rel == nil {
		delete(r.related, name)
		r.values[name] = nil
		return
	}
	r.related[name] = rel
	r.values[name] = rel.PK()
}

// Values returns a snapshot of the attribute values.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

func (r *Record) String() string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]string, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, fmt.Sprintf("%s:%v", k, r.values[k]))
	}
	name := "Record"
	if r.model != nil {
		name = r.model.Name()
	}
	return fmt.Sprintf("<%s: %s>", name, strings.Join(attrs, ","))
}
