package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-roster-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "roster", Password: "secret", Name: "school", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=roster password=secret dbname=school sslmode=disable", dsn)
}
