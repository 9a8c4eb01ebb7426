package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng&Secure!", false},
		{"too short", "Ab1!xyz", true},
		{"no uppercase", "weak&secure1234", true},
		{"no lowercase", "WEAK&SECURE1234", true},
		{"no digit", "Weak&Secure!!!!", true},
		{"no special", "WeakSecure12345", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("book_worm42"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("_leading"))
	assert.Error(t, ValidateUsername("trailing-"))
	assert.Error(t, ValidateUsername("spaces not allowed"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("reader@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
}
