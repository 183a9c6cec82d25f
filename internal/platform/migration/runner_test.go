// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io"
	"io/fs"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/personapi/internal/platform/database/schema"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/db", "pgx5://u:p@localhost:5432/db"},
		{"postgresql://localhost/db?sslmode=disable", "pgx5://localhost/db?sslmode=disable"},
		{"pgx5://localhost/db", "pgx5://localhost/db"},
		{"host=localhost dbname=db", "host=localhost dbname=db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
		})
	}
}

func TestEmbeddedScripts(t *testing.T) {
	up, err := fs.ReadFile(schema.Migrations, "migrations/000001_create_person.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS person")

	_, err = fs.ReadFile(schema.Migrations, "migrations/000001_create_person.down.sql")
	require.NoError(t, err)
}

/*
TestRunUp_UnreachableDatabase verifies that bootstrap failures surface as errors
instead of being swallowed, which keeps the server from starting.
*/
func TestRunUp_UnreachableDatabase(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := RunUp("postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1", "", logger)
	assert.Error(t, err)
}

func TestRunUp_MissingSchemaDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := RunUp("postgres://nobody@127.0.0.1:1/none?sslmode=disable", t.TempDir()+"/missing", logger)
	assert.Error(t, err)
}
