package database

import (
	"fmt"
	"regexp"

	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"gorm.io/gorm"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// EnsureSortIndexes creates a btree index for every column an endpoint's
// sort policy permits ordering by. Sortable columns without an index turn
// each allowed sort into a sequential scan, so the policies drive index
// creation at startup.
func EnsureSortIndexes(db *gorm.DB, table string, columns []string) error {
	if !identifierPattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}

	for _, column := range columns {
		if !identifierPattern.MatchString(column) {
			return fmt.Errorf("invalid column name %q for table %q", column, table)
		}

		indexName := fmt.Sprintf("idx_%s_%s", table, column)
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", indexName, table, column)

		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", indexName, err)
		}

		logger.GetLogger().Debug("Sort index ensured: " + indexName)
	}

	return nil
}
