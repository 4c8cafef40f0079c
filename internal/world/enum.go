// ABOUTME: Enumeration contract for host types with named variants
// ABOUTME: Unit variants carry no data and can be represented by name alone

package world

// VariantKind describes whether an enum variant carries data.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantTuple
	VariantStruct
)

func (k VariantKind) String() string {
	switch k {
	case VariantUnit:
		return "unit"
	case VariantTuple:
		return "tuple"
	case VariantStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Enum is implemented by host types that model a closed set of variants.
// Implementations should use value receivers.
type Enum interface {
	// VariantName returns the name of the current variant.
	VariantName() string
	// VariantKind reports whether the current variant carries data.
	VariantKind() VariantKind
	// VariantFields returns the data of a non-unit variant.
	VariantFields() []any
}
