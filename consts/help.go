package consts

import "time"

const (
	// HelpRequestTTL is the fixed validity window of a help request
	HelpRequestTTL = 30 * time.Minute

	DefaultSearchRadiusKm = 5.0
	MaxSearchRadiusKm     = 100.0

	MaxCategoryLength    = 64
	MaxDescriptionLength = 1000
	MaxMessageLength     = 500
)
