package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
)

func TestNewTestConnection_MigratesUsers(t *testing.T) {
	db, err := NewTestConnection()
	require.NoError(t, err)
	defer Close(db)

	assert.True(t, db.Migrator().HasTable("users"))
}

func TestNewConnection_UnsupportedType(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Type: "oracle"})

	assert.EqualError(t, err, "unsupported database type: oracle")
}
