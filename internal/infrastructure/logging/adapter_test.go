package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/hapkiduki/boxopt/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestAdapter_CarriesFieldsAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewAdapter(logger.MustNew(logger.Config{Level: "debug", Output: &buf}))

	ctx := context.WithValue(context.Background(), logger.RequestIDKey, "req-7")
	log.With("component", "box").WithContext(ctx).Warn("Invalid volume", "input", "abc")

	out := buf.String()
	assert.Contains(t, out, `"component":"box"`)
	assert.Contains(t, out, `"request_id":"req-7"`)
	assert.Contains(t, out, `"input":"abc"`)
	assert.Contains(t, out, `"level":"warn"`)
}
