// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/personapi/internal/platform/sqlite"
)

func TestOpen_InMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open("file::memory:", logger, false)
	require.NoError(t, err)

	assert.NoError(t, sqlite.Ping(context.Background(), db))
	require.NoError(t, sqlite.Close(db))
	assert.Error(t, sqlite.Ping(context.Background(), db))
}
