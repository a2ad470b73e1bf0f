package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestSignAndVerifyJWT(t *testing.T) {
	token, err := SignJWT(testSecret, "user-123", "jane@example.com")
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	claims, err := VerifyJWT(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyJWT() error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Subject = %q, want user-123", claims.Subject)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Issuer != "creatoriq" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	token, err := SignJWT(testSecret, "user-123", "jane@example.com")
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("other-secret", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	claims := TokenClaims{
		Email: "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyJWT(testSecret, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyJWTRejectsMissingSubject(t *testing.T) {
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyJWT(testSecret, token); err == nil {
		t.Fatal("expected error for token without subject")
	}
}

func TestAuthJWTMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User", UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthJWT(testSecret)(next)

	validToken, err := SignJWT(testSecret, "user-123", "jane@example.com")
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "valid bearer", header: "Bearer " + validToken, wantStatus: http.StatusOK, wantUser: "user-123"},
		{name: "lowercase scheme", header: "bearer " + validToken, wantStatus: http.StatusOK, wantUser: "user-123"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/idea", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK && rec.Header().Get("X-User") != tc.wantUser {
				t.Fatalf("user id = %q, want %q", rec.Header().Get("X-User"), tc.wantUser)
			}
			if tc.wantStatus == http.StatusUnauthorized {
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Fatalf("Content-Type = %q", ct)
				}
			}
		})
	}
}
