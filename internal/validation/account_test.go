package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{name: "simple lowercase", username: "alice"},
		{name: "badge style login", username: "j.doe-01"},
		{name: "underscore", username: "field_team_7"},
		{name: "exactly min length", username: "abc"},
		{name: "exactly max length", username: "a1234567890123456789012345678901"},
		{name: "empty", username: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too short", username: "ab", wantErr: true, errMsg: "at least 3"},
		{name: "too long", username: "a12345678901234567890123456789012", wantErr: true, errMsg: "must not exceed 32"},
		{name: "starts with dot", username: ".alice", wantErr: true, errMsg: "must start with a letter or digit"},
		{name: "contains space", username: "alice smith", wantErr: true, errMsg: "must start with a letter or digit"},
		{name: "cyrillic", username: "иван", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid", username: "alice", password: "correct horse battery"},
		{name: "valid without username", username: "", password: "0123456789"},
		{name: "empty", username: "alice", password: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too short", username: "alice", password: "short", wantErr: true, errMsg: "at least 10"},
		{name: "contains username", username: "alice", password: "my-ALICE-password", wantErr: true, errMsg: "must not contain the username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.username, tt.password)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
