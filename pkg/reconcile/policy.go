package reconcile

// Policy is the write rule governing a field.
type Policy int

// Write policies. Fill-if-empty fields are never overwritten: manual edits
// and prior data outside the always-overwrite category stay untouched.
const (
	// AlwaysOverwrite fields are written whenever the profile supplies a
	// value, even when identical to the current one (idempotent no-op).
	AlwaysOverwrite Policy = iota

	// FillIfEmptyContact fields (contact details) are written only when
	// the record's current value is empty.
	FillIfEmptyContact

	// FillIfEmptyProfile fields (narrative profile text) are written only
	// when the record's current value is empty.
	FillIfEmptyProfile
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case AlwaysOverwrite:
		return "always_overwrite"
	case FillIfEmptyContact:
		return "fill_if_empty_contact"
	default:
		return "fill_if_empty_profile"
	}
}

// Policies maps every writable field to exactly one policy. Static for the
// life of the process.
type Policies map[Field]Policy

// DefaultPolicies returns the standard policy table. Survey answers are
// authoritative for capability and preference fields; everything else only
// fills gaps.
func DefaultPolicies() Policies {
	return Policies{
		FieldCapabilities:   AlwaysOverwrite,
		FieldRelational:     AlwaysOverwrite,
		FieldAutonomy:       AlwaysOverwrite,
		FieldEmail:          FillIfEmptyContact,
		FieldPhone:          FillIfEmptyContact,
		FieldAddress:        FillIfEmptyContact,
		FieldCity:           FillIfEmptyContact,
		FieldState:          FillIfEmptyContact,
		FieldSchedulingLink: FillIfEmptyContact,
		FieldProfile:        FillIfEmptyProfile,
	}
}

// Write is one planned field update.
type Write struct {
	Field Field
	Value string
}

// Preserved records a field that was deliberately not written because the
// record already carries a value.
type Preserved struct {
	Field   Field
	Current string
}

// Plan computes the write instructions for one matched record. For each
// field with a non-empty profile value: always-overwrite fields are written
// unconditionally; fill-if-empty fields are written only when the record is
// empty, otherwise a Preserved note is returned. Field order follows the
// canonical Fields order, so plans are deterministic.
func Plan(record *ClientRecord, values map[Field]string, policies Policies) (writes []Write, preserved []Preserved) {
	for _, field := range Fields {
		value := values[field]
		if value == "" {
			continue
		}
		policy, ok := policies[field]
		if !ok {
			continue
		}

		switch policy {
		case AlwaysOverwrite:
			writes = append(writes, Write{Field: field, Value: value})
		case FillIfEmptyContact, FillIfEmptyProfile:
			if record.Empty(field) {
				writes = append(writes, Write{Field: field, Value: value})
			} else {
				preserved = append(preserved, Preserved{Field: field, Current: record.Value(field)})
			}
		}
	}
	return writes, preserved
}
