package auth

import (
	"testing"
)

func TestSignAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "dev")

	token, err := SignJWT("google:42", "anouk@example.com", "Anouk", "https://img.example.com/a.png")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "google:42" {
		t.Fatalf("expected sub google:42, got %s", claims.Subject)
	}
	if claims.Email != "anouk@example.com" {
		t.Fatalf("expected email, got %s", claims.Email)
	}
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := VerifyJWT("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	token, err := SignJWT("google:42", "", "", "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	if _, err := VerifyJWT(token); err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}

func TestSignJWTRequiresSub(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := SignJWT("", "", "", ""); err == nil {
		t.Fatal("expected error for empty sub")
	}
}
