// Package record models the rows retrieved from kintone.
package record

// Record maps field codes to fields and remembers the order in which the
// codes were received.
type Record struct {
	codes  []string
	fields map[string]Field
}

// New creates an empty record
func New() Record {
	return Record{fields: make(map[string]Field)}
}

// Set stores a field, keeping the first position of an existing code
func (r *Record) Set(code string, f Field) {
	if r.fields == nil {
		r.fields = make(map[string]Field)
	}
	if _, ok := r.fields[code]; !ok {
		r.codes = append(r.codes, code)
	}
	r.fields[code] = f
}

// Get returns the field for code, or an absent field
func (r Record) Get(code string) Field {
	return r.fields[code]
}

// Lookup returns the field for code and whether it was present
func (r Record) Lookup(code string) (Field, bool) {
	f, ok := r.fields[code]
	return f, ok
}

// Codes returns the field codes in arrival order
func (r Record) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// Len returns the number of fields
func (r Record) Len() int { return len(r.codes) }

// Columns returns the union of field codes over records in first-seen order.
func Columns(records []Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for _, code := range r.codes {
			if !seen[code] {
				seen[code] = true
				cols = append(cols, code)
			}
		}
	}
	return cols
}
