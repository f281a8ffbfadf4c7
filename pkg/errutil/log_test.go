// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/holologin/pkg/errutil"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("CATALOG_INVALID").
		With("file", "vi.yaml").
		Errorf("missing key")

	errutil.LogError(context.Background(), logger, "load catalogs", err)

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "load catalogs", entry["msg"])
	assert.Equal(t, "CATALOG_INVALID", entry["code"])
	fields, ok := entry["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "vi.yaml", fields["file"])
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogError(context.Background(), logger, "session failed", errors.New("standard error"))

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Contains(t, entry["error"], "standard error")
	assert.NotContains(t, entry, "code")
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "coded", err: oops.Code("CONFIG_INVALID").Errorf("bad"), want: "CONFIG_INVALID"},
		{name: "wrapped coded", err: oops.Wrapf(oops.Code("INPUT_EMPTY").Errorf("empty"), "read"), want: "INPUT_EMPTY"},
		{name: "oops without code", err: oops.Errorf("plain"), want: errutil.UnknownCode},
		{name: "standard error", err: errors.New("plain"), want: errutil.UnknownCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errutil.Code(tt.err))
		})
	}
}

func TestHasCode(t *testing.T) {
	err := oops.Code("CONSOLE_INPUT_CLOSED").Errorf("eof")

	assert.True(t, errutil.HasCode(err, "CONSOLE_INPUT_CLOSED"))
	assert.False(t, errutil.HasCode(err, "CONFIG_INVALID"))
	assert.False(t, errutil.HasCode(nil, "CONSOLE_INPUT_CLOSED"))
}
