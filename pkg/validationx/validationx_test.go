package validationx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordFormatRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Str0ngP@ss", wantErr: false},
		{name: "too short", password: "S7@a", wantErr: true},
		{name: "no uppercase", password: "str0ngp@ss", wantErr: true},
		{name: "no lowercase", password: "STR0NGP@SS", wantErr: true},
		{name: "no digit", password: "StrongP@ss", wantErr: true},
		{name: "no special", password: "Str0ngPass", wantErr: true},
		{name: "whitespace rejected", password: "Str0ng P@ss", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := PasswordFormat.Validate(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPasswordFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "cameroon mobile", phone: "+237650123456", wantErr: false},
		{name: "no plus", phone: "237650123456", wantErr: false},
		{name: "empty passes for Required to catch", phone: "", wantErr: false},
		{name: "leading zero", phone: "0650123456", wantErr: true},
		{name: "too short", phone: "+2376501", wantErr: true},
		{name: "letters", phone: "+23765O123456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := IsPhone.Validate(tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsCurrencyCode(t *testing.T) {
	t.Parallel()

	assert.NoError(t, IsCurrencyCode.Validate("XAF"))
	assert.NoError(t, IsCurrencyCode.Validate("EUR"))
	assert.NoError(t, IsCurrencyCode.Validate("")) // Required handles emptiness
	assert.Error(t, IsCurrencyCode.Validate("xaf"))
	assert.Error(t, IsCurrencyCode.Validate("XAFF"))
	assert.Error(t, IsCurrencyCode.Validate("X1F"))
}
