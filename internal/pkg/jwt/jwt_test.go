package jwt

import (
	"testing"
	"time"
)

func TestSSETokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, expiresIn, err := svc.GenerateSSEToken("emp-1")
	if err != nil {
		t.Fatal(err)
	}
	if expiresIn != 300 {
		t.Errorf("expiresIn = %d, want 300", expiresIn)
	}

	employeeID, err := svc.ValidateSSEToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if employeeID != "emp-1" {
		t.Errorf("employeeID = %q, want emp-1", employeeID)
	}
}

func TestValidateSSETokenRejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	// An access token carries type "access" and must not open a stream.
	_, tokenString, err := svc.JWTAuth().Encode(map[string]interface{}{
		"employee_id": "emp-1",
		"type":        "access",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateSSEToken(tokenString); err == nil {
		t.Error("expected access token to be rejected")
	}
}

func TestValidateSSETokenWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a").GenerateSSEToken("emp-1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewJWTService("secret-b").ValidateSSEToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}

	if _, err := NewJWTService("secret-a").ValidateSSEToken("garbage"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}
