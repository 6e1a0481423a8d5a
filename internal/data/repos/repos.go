// Package repos holds the per-entity data access layer over the project
// database. Every method takes an optional transaction; nil means the repo's
// own connection, so each call runs in its own transaction scope. Scoped
// name lookups return pipeerr.ErrNotFound when the name does not resolve.
package repos

import "gorm.io/gorm"

func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
