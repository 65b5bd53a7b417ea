package service

import (
	"errors"
	"testing"
)

func TestAuthService_OwnerLogin(t *testing.T) {
	f := newFixture()
	if _, err := f.auth.Login("owner", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login with wrong password: err = %v", err)
	}

	resp, err := f.auth.Login("owner", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.OwnerID != OwnerID("owner") {
		t.Errorf("OwnerID = %q, want stable id %q", resp.OwnerID, OwnerID("owner"))
	}
	claims, err := f.auth.ValidateOwnerToken(resp.Token)
	if err != nil || claims.OwnerID != resp.OwnerID {
		t.Errorf("ValidateOwnerToken = %+v, %v", claims, err)
	}
	if _, err := f.auth.ValidateOwnerToken(resp.Token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: err = %v", err)
	}
}

func TestAuthService_RespondentTokensAreScoped(t *testing.T) {
	f := newFixture()
	token, err := f.auth.GenerateRespondentToken("form-1", "sess-1")
	if err != nil {
		t.Fatalf("GenerateRespondentToken: %v", err)
	}
	claims, err := f.auth.ValidateRespondentToken(token)
	if err != nil || claims.FormID != "form-1" || claims.SessionID != "sess-1" {
		t.Errorf("ValidateRespondentToken = %+v, %v", claims, err)
	}
	if _, err := f.auth.ValidateOwnerToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("respondent token accepted as owner token: err = %v", err)
	}

	owner, _ := f.auth.Login("owner", "pw")
	if _, err := f.auth.ValidateRespondentToken(owner.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("owner token accepted as respondent token: err = %v", err)
	}
}
