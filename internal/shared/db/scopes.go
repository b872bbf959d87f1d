package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate locks selected rows when ctx carries a transaction. Outside a
// transaction a row lock would be released immediately, so it is skipped.
func ForUpdate(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if _, ok := ctx.Value(txKey{}).(*gorm.DB); !ok {
			return db
		}
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}
