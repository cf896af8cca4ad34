package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		username    string
		email       string
		lock        string
		wantMessage string
		wantMissing []string
	}{
		{
			name:     "valid credentials",
			username: "bob_01",
			email:    "bob@x.com",
			lock:     "Passw0rd12",
		},
		{
			name:        "missing username",
			username:    "",
			email:       "bob@x.com",
			lock:        "Passw0rd12",
			wantMessage: "username, email and lock are required",
		},
		{
			name:        "missing lock",
			username:    "bob_01",
			email:       "bob@x.com",
			lock:        "",
			wantMessage: "username, email and lock are required",
		},
		{
			name:        "username too short",
			username:    "bob",
			email:       "bob@x.com",
			lock:        "Passw0rd12",
			wantMessage: "username must be between 4-16 characters",
		},
		{
			name:        "username too long",
			username:    strings.Repeat("b", 17),
			email:       "bob@x.com",
			lock:        "Passw0rd12",
			wantMessage: "username must be between 4-16 characters",
		},
		{
			name:        "username with invalid characters",
			username:    "bob-01",
			email:       "bob@x.com",
			lock:        "Passw0rd12",
			wantMessage: "username may only be alphanumeric, and optionally contain underscores",
		},
		{
			name:        "invalid email",
			username:    "bob_01",
			email:       "not-an-email",
			lock:        "Passw0rd12",
			wantMessage: "email entered is invalid",
		},
		{
			name:        "password too short",
			username:    "bob_01",
			email:       "bob@x.com",
			lock:        "Ab1",
			wantMessage: "password must be at least 8 characters",
		},
		{
			name:        "password missing digits",
			username:    "bob_01",
			email:       "bob@x.com",
			lock:        "Passwords",
			wantMessage: "missing criteria for password requirements",
			wantMissing: []string{"numbers"},
		},
		{
			name:        "password with one digit still missing digits",
			username:    "bob_01",
			email:       "bob@x.com",
			lock:        "Passw0rd!!",
			wantMessage: "missing criteria for password requirements",
			wantMissing: []string{"numbers"},
		},
		{
			name:        "password missing capitals",
			username:    "bob_01",
			email:       "bob@x.com",
			lock:        "password12",
			wantMessage: "missing criteria for password requirements",
			wantMissing: []string{"capitals"},
		},
		{
			name:        "password missing both criteria",
			username:    "bob_01",
			email:       "bob@x.com",
			lock:        "passwords",
			wantMessage: "missing criteria for password requirements",
			wantMissing: []string{"numbers", "capitals"},
		},
		{
			name:        "symbols count toward neither criterion",
			username:    "bob_01",
			email:       "bob@x.com",
			lock:        "!!!!!!!!",
			wantMessage: "missing criteria for password requirements",
			wantMissing: []string{"numbers", "capitals"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateCredentials(tt.username, tt.email, tt.lock)
			if tt.wantMessage == "" {
				require.NoError(t, err)
				return
			}

			var policyErr *PolicyError
			require.ErrorAs(t, err, &policyErr)
			assert.Equal(t, tt.wantMessage, policyErr.Message)
			assert.Equal(t, tt.wantMissing, policyErr.Missing)
		})
	}
}

func TestValidateCredentialsIsPure(t *testing.T) {
	t.Parallel()

	// criteria counters must not accumulate across calls
	for i := 0; i < 3; i++ {
		err := ValidateCredentials("bob_01", "bob@x.com", "password1")
		var policyErr *PolicyError
		require.True(t, errors.As(err, &policyErr))
		assert.Equal(t, []string{"numbers", "capitals"}, policyErr.Missing)
	}
}
