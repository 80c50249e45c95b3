package domsift

import "github.com/hazyhaar/domsift/internal/store"

// Re-exported types from internal/store for use by cmd/ and external callers.
type (
	Run         = store.Run
	PatternRow  = store.PatternRow
	TokenRow    = store.TokenRow
	PatternStat = store.PatternStat
)
