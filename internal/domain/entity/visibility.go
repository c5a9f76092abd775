package entity

// Visibility is the display state of a group of form fields
type Visibility string

const (
	Visible Visibility = "visible"
	Hidden  Visibility = "hidden"
)

// FieldVisibility holds the display state of both date field groups.
// Exactly one group is visible at any time.
type FieldVisibility struct {
	SingleDate Visibility
	DateRange  Visibility
}

// VisibilityFor returns the field visibility for a query type. Unrecognized values
// fall back to the single-date layout.
func VisibilityFor(queryType string) FieldVisibility {
	if mode, ok := ParseQueryMode(queryType); ok && mode == ModeRange {
		return FieldVisibility{SingleDate: Hidden, DateRange: Visible}
	}
	return FieldVisibility{SingleDate: Visible, DateRange: Hidden}
}
