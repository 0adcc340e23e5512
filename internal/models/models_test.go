package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every GORM table name must have a matching CREATE TABLE in the initial
// migration, otherwise the first query against it fails at runtime.
func TestMigrationCreatesEveryModelTable(t *testing.T) {
	ddl, err := os.ReadFile(filepath.Join("..", "..", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)

	tables := []string{
		Business{}.TableName(),
		BusinessHours{}.TableName(),
		BusinessService{}.TableName(),
		BusinessFAQ{}.TableName(),
		CustomInstructions{}.TableName(),
		KnowledgeItem{}.TableName(),
		Plan{}.TableName(),
		UserPlan{}.TableName(),
		UsageTracking{}.TableName(),
		CachedResponse{}.TableName(),
		ChatConversation{}.TableName(),
		ChatMessage{}.TableName(),
		WidgetSettings{}.TableName(),
	}

	for _, table := range tables {
		assert.Contains(t, string(ddl), "CREATE TABLE "+table+" (", table)
	}
}
