package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hapkiduki/boxopt/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawVolume_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body    string
		want    RawVolume
		wantErr bool
	}{
		{`{"volume": "2"}`, "2", false},
		{`{"volume": 2.5}`, "2.5", false},
		{`{"volume": 1e3}`, "1e3", false},
		{`{"volume": "abc"}`, "abc", false},
		{`{}`, "", false},
		{`{"volume": true}`, "", true},
		{`{"volume": [1]}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req ComputeBoxRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrVolumeType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Volume)
		})
	}
}

func TestNewBoxResponse(t *testing.T) {
	c, err := entity.NewComputation("2")
	require.NoError(t, err)

	resp := NewBoxResponse(c)
	assert.Equal(t, c.ID.String(), resp.ID)
	assert.Equal(t, "2", resp.Input)
	assert.Equal(t, c.Spec.Width, resp.Width)
	assert.Equal(t, resp.Width, resp.Length)
	assert.Equal(t, c.Spec.Vertices(), resp.Vertices)
	assert.Len(t, resp.Faces, 5)

	b, err := json.Marshal(NewSuccessResponse(resp))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"success":true`)
	assert.Contains(t, string(b), `"faces":[{"name":"base"`)
}

func TestAPIResponse_WithMeta(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewErrorResponse[any](CodeInvalidInput, "volume must be a positive number").WithMeta("req-1", "dev", now)

	require.NotNil(t, r.Meta)
	assert.False(t, r.Success)
	assert.Equal(t, "req-1", r.Meta.RequestID)
	assert.Equal(t, "2026-01-02T03:04:05Z", r.Meta.Timestamp)
	assert.Equal(t, CodeInvalidInput, r.Error.Code)
}
