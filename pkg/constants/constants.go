// Package constants provides shared constants used throughout the
// gastroflow codebase. Centralizing them keeps the reconciliation rules in
// one place and out of the algorithm bodies.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Catalog constants define record shape limits
const (
	// MaxImageSlots is the number of image URL slots a product record carries
	MaxImageSlots = 8
)

// Variant detection constants define the grouping thresholds
const (
	// MinBaseNameLength is the minimum base-name length eligible to open a
	// variant group; shorter names are too ambiguous to group
	MinBaseNameLength = 8

	// MinLengthRatio gates grouping on min(len)/max(len) of two base names
	MinLengthRatio = 0.5

	// SimilarityThreshold is the sequence-similarity bound for grouping.
	// Two base names join a group only when their ratio is strictly greater.
	SimilarityThreshold = 0.98

	// MaxVariantLabelLength caps the literal name-difference fallback used
	// as a variant label; longer differences are discarded as unreliable
	MaxVariantLabelLength = 30
)

// Category resolution constants
const (
	// SuggestionCount is how many candidate categories an interactive
	// resolver is offered on a mapping miss
	SuggestionCount = 5
)
