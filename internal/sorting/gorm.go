package sorting

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderer adapts a gorm query to the QueryOrderer interface.
// Columns go through clause.OrderByColumn so gorm quotes identifiers
// instead of splicing raw SQL.
type GormOrderer struct {
	db *gorm.DB
}

func NewGormOrderer(db *gorm.DB) *GormOrderer {
	return &GormOrderer{db: db}
}

func (o *GormOrderer) OrderBy(column string, descending bool) {
	o.db = o.db.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   descending,
	})
}

// DB returns the query as built so far, including any ordering clauses
// added through OrderBy. An orderer that received no OrderBy calls
// returns the unordered base query.
func (o *GormOrderer) DB() *gorm.DB {
	return o.db
}
