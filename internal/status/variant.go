package status

// Variant is the badge style a status is rendered with.
type Variant string

const (
	VariantSuccess   Variant = "success"
	VariantWarning   Variant = "warning"
	VariantError     Variant = "error"
	VariantInfo      Variant = "info"
	VariantSecondary Variant = "secondary"
	VariantDefault   Variant = "default"
)

// BadgeVariant maps any normalized or raw status to its badge variant. Every
// value admitted by the Normalize functions has an arm here; everything else
// falls through to VariantDefault.
func BadgeVariant(s string) Variant {
	switch canonical(s) {
	case "published", "confirmed", "completed", "accepted", "valid":
		return VariantSuccess
	case "pending":
		return VariantWarning
	case "cancelled", "failed", "rejected":
		return VariantError
	case "refunded", "used":
		return VariantInfo
	case "draft", "expired":
		return VariantSecondary
	default:
		return VariantDefault
	}
}
