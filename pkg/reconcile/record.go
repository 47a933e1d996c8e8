// Package reconcile resolves normalized survey profiles against client
// records and decides, field by field, what may be written. Matching and
// write planning are pure functions so they can be tested without any
// external API.
package reconcile

// Field names a writable field on a client record. Values mirror the record
// store's property names.
type Field string

// Writable client-record fields.
const (
	FieldEmail          Field = "Email"
	FieldPhone          Field = "Phone"
	FieldAddress        Field = "Client Address"
	FieldCity           Field = "City"
	FieldState          Field = "State"
	FieldSchedulingLink Field = "Scheduling link"
	FieldCapabilities   Field = "Capability Requirements"
	FieldRelational     Field = "Relational Preference"
	FieldAutonomy       Field = "Decision Autonomy"
	FieldProfile        Field = "Onboarding Profile"
)

// Fields lists every writable field in report order.
var Fields = []Field{
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldCity,
	FieldState,
	FieldSchedulingLink,
	FieldCapabilities,
	FieldRelational,
	FieldAutonomy,
	FieldProfile,
}

// ClientRecord is the reconciliation view of one record in the external
// store: its identity plus the current value of every writable field.
type ClientRecord struct {
	ID     string // store page ID
	Name   string // display name, used for matching
	Fields map[Field]string
}

// Value returns the record's current value for a field, empty when absent.
func (r *ClientRecord) Value(f Field) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[f]
}

// Empty reports whether the record has no value for a field.
func (r *ClientRecord) Empty(f Field) bool {
	return r.Value(f) == ""
}
