package specification

import "gorm.io/gorm"

// Specification narrows a query. Conversation and message lookups are built from several.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
