package auth_test

import (
	"strings"
	"testing"

	auth "github.com/bchristian14/leaguelogik-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"acceptable", "Valid1!A", ""},
		{"all special chars acceptable", `Aa1!@#$%^&*(),.?":{}|<>`, ""},
		{"too short", "Short1!", "password must be between 8 and 100 characters"},
		{"missing uppercase", "nouppercase1!", "password must contain at least one uppercase letter"},
		{"missing lowercase", "NOLOWERCASE1!", "password must contain at least one lowercase letter"},
		{"missing digit", "NoDigitsHere!", "password must contain at least one digit"},
		{"missing special", "NoSpecialChar1", "password must contain at least one special character (" + auth.PasswordSpecialChars + ")"},
		{"empty", "", "password is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.ValidatePasswordStrength(tc.password)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, "PASSWORD_POLICY", auth.FailureReason(err))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidatePasswordStrengthLengthBoundaries(t *testing.T) {
	// pad with lowercase filler around a compliant core
	core := "Aa1!"

	atMax := core + strings.Repeat("x", 96)
	require.Len(t, atMax, 100)
	assert.NoError(t, auth.ValidatePasswordStrength(atMax))

	overMax := core + strings.Repeat("x", 97)
	require.Len(t, overMax, 101)
	assert.Error(t, auth.ValidatePasswordStrength(overMax))

	atMin := core + "xxxx"
	require.Len(t, atMin, 8)
	assert.NoError(t, auth.ValidatePasswordStrength(atMin))

	underMin := core + "xxx"
	require.Len(t, underMin, 7)
	assert.Error(t, auth.ValidatePasswordStrength(underMin))
}

func TestValidatePasswordStrengthCountsRunesNotBytes(t *testing.T) {
	// 100 runes but well over 100 bytes; length is measured in characters
	multibyte := "Aa1!" + strings.Repeat("é", 96)
	require.Equal(t, 100, len([]rune(multibyte)))
	require.Greater(t, len(multibyte), 100)

	assert.NoError(t, auth.ValidatePasswordStrength(multibyte))
	assert.Error(t, auth.ValidatePasswordStrength(multibyte+"é"), "101 runes is over the limit")
}
