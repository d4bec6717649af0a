package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T, format string) (*Logger, *bytes.Buffer) {
	t.Helper()

	log, err := NewLogger(&Config{Level: DebugLevel, Format: format, AppName: "gopet", Version: "test"})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	return log, buf
}

func TestJSONFormatterCarriesFieldsAndAppInfo(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	log.WithRideID("ride_1").WithField("status", "COMPLETED").Info("ride finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ride finished", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "gopet", entry["app"])
	assert.Equal(t, "test", entry["version"])
	assert.Equal(t, "ride_1", entry["ride_id"])
	assert.Equal(t, "COMPLETED", entry["status"])
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	_ = log.WithField("driver_id", "drv_1")
	log.Info("plain")

	assert.NotContains(t, buf.String(), "drv_1")
}

func TestWithContextExtractsIdentifiers(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithDriverID(ctx, "drv_9")
	ctx = ContextWithRideID(ctx, "ride_3")
	log.WithContext(ctx).Warn("slow")

	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"driver_id":"drv_9"`)
	assert.Contains(t, buf.String(), `"ride_id":"ride_3"`)
}

func TestTextFormatterSortsFields(t *testing.T) {
	log, buf := newBufferedLogger(t, "text")
	log.logger.SetFormatter(&CustomTextFormatter{DisableColors: true, AppName: "gopet"})

	log.WithFields(map[string]interface{}{"b": 2, "a": 1}).Info("hello")

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "hello a=1 b=2\n"), line)
	assert.Contains(t, line, "[gopet]")
	assert.NotContains(t, line, "\033[")
}

func TestLogAPIRequestLevelFollowsStatus(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	log.LogAPIRequest("GET", "/api/rides/:id", 404, 3*time.Millisecond, "req-1")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.EqualValues(t, 404, entry["status_code"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestAuditLoggerTagsEntries(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	NewAuditLoggerFrom(log).LogAction("driver.application", "driver", "drv_1", map[string]interface{}{"status": "APPROVED"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "audit", entry["type"])
	assert.Equal(t, "drv_1", entry["resource_id"])
	assert.Equal(t, "APPROVED", entry["status"])
}
