package identity

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "any scheme", header: "Token abc", want: "abc"},
		{name: "empty header", header: "", wantErr: true},
		{name: "scheme only", header: "Bearer", wantErr: true},
		{name: "scheme and space", header: "Bearer   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubFirebase struct {
	token *auth.Token
	err   error
}

func (s stubFirebase) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return s.token, s.err
}

func TestFirebaseVerifier_Verify(t *testing.T) {
	v := &FirebaseVerifier{client: stubFirebase{token: &auth.Token{
		UID:    "uid-1",
		Claims: map[string]interface{}{"email": "Jane@Employetica.com"},
	}}}

	id, err := v.Verify(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.UID)
	assert.Equal(t, "jane@employetica.com", id.Email)
	assert.Equal(t, "firebase", id.Provider)
}

func TestFirebaseVerifier_Rejected(t *testing.T) {
	v := &FirebaseVerifier{client: stubFirebase{err: errors.New("token expired")}}

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFirebaseVerifier_NoEmail(t *testing.T) {
	v := &FirebaseVerifier{client: stubFirebase{token: &auth.Token{UID: "uid-1", Claims: map[string]interface{}{}}}}

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, ErrNoEmail)
}

func TestPrimaryEmail(t *testing.T) {
	primaryID := "idn_2"
	usr := &clerk.User{
		PrimaryEmailAddressID: &primaryID,
		EmailAddresses: []*clerk.EmailAddress{
			{ID: "idn_1", EmailAddress: "old@employetica.com"},
			{ID: "idn_2", EmailAddress: "hr@employetica.com"},
		},
	}
	assert.Equal(t, "hr@employetica.com", primaryEmail(usr))

	usr.PrimaryEmailAddressID = nil
	assert.Equal(t, "old@employetica.com", primaryEmail(usr))

	assert.Equal(t, "", primaryEmail(&clerk.User{}))
	assert.Equal(t, "", primaryEmail(nil))
}
