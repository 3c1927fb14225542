package handler

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    RawText
		wantErr bool
	}{
		{name: "string", body: `{"count":"12"}`, want: "12"},
		{name: "free text", body: `{"count":"a dozen"}`, want: "a dozen"},
		{name: "integer", body: `{"count":7}`, want: "7"},
		{name: "decimal keeps literal", body: `{"count":2.5}`, want: "2.5"},
		{name: "negative", body: `{"count":-3}`, want: "-3"},
		{name: "null", body: `{"count":null}`, want: ""},
		{name: "absent", body: `{}`, want: ""},
		{name: "boolean rejected", body: `{"count":true}`, wantErr: true},
		{name: "object rejected", body: `{"count":{"n":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SubmitEventRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Count)
		})
	}
}

func TestSubmitEventRequest_ItemUUID(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, id, SubmitEventRequest{ItemID: id.String()}.ItemUUID())
	assert.Equal(t, uuid.Nil, SubmitEventRequest{}.ItemUUID())
	assert.Equal(t, uuid.Nil, SubmitEventRequest{ItemID: "not-a-uuid"}.ItemUUID())
}
