package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantToken   string
		wantPresent bool
	}{
		{"absent", "", "", false},
		{"canonical", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"scheme case", "bearer abc", "abc", true},
		{"empty credential", "Bearer ", "", true},
		{"scheme only", "Bearer", "", true},
		{"other scheme", "Basic dXNlcjpwYXNz", "", true},
		{"keeps trailing text", "Bearer a b", "a b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, present := ExtractBearer(tt.header)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantPresent, present)
		})
	}
}

func TestBearerValue(t *testing.T) {
	token, present := ExtractBearer(BearerValue("xyz"))
	assert.True(t, present)
	assert.Equal(t, "xyz", token)
}
