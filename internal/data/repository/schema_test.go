package repository

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fakes used by the service tests never execute SQL, so column drift
// between the migration and the queries would only surface against a live
// database. These checks pin the INSERT column lists to the schema.

func migrationSQL(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	return string(data)
}

// tableColumns extracts the column names of a CREATE TABLE block.
func tableColumns(t *testing.T, sql, table string) map[string]bool {
	t.Helper()

	re := regexp.MustCompile(`(?s)CREATE TABLE ` + table + ` \((.*?)\);`)
	match := re.FindStringSubmatch(sql)
	require.NotNil(t, match, "table %s not found in migration", table)

	columns := make(map[string]bool)
	for _, line := range strings.Split(match[1], "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.ToLower(fields[0])
		switch name {
		case "unique", "primary", "check", "constraint", "--":
			continue
		}
		columns[name] = true
	}
	return columns
}

func TestMigrationCoversInsertColumns(t *testing.T) {
	sql := migrationSQL(t)

	inserts := map[string][]string{
		"title_genres":       {"id", "title_id", "genre_id", "created_at"},
		"users":              {"id", "username", "email", "first_name", "last_name", "bio", "role", "is_superuser", "created_at", "updated_at"},
		"confirmation_codes": {"id", "user_id", "code_hash", "expires_at", "is_used", "created_at"},
		"categories":         {"id", "name", "slug", "created_at"},
		"genres":             {"id", "name", "slug", "created_at"},
		"titles":             {"id", "name", "year", "description", "category_id", "created_at", "updated_at"},
		"reviews":            {"id", "title_id", "author_id", "text", "score", "created_at", "updated_at"},
		"comments":           {"id", "review_id", "author_id", "text", "created_at", "updated_at"},
	}

	for table, written := range inserts {
		columns := tableColumns(t, sql, table)
		for _, col := range written {
			assert.True(t, columns[col], "%s.%s is written by the repository but missing from the schema", table, col)
		}
	}
}

func TestMigrationKeepsReviewUniqueness(t *testing.T) {
	sql := migrationSQL(t)
	assert.Contains(t, sql, "UNIQUE (author_id, title_id)")
	assert.Contains(t, sql, "UNIQUE (title_id, genre_id)")
}
