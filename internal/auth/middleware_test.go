package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newGuardedEngine(tokens *Tokens) (*gin.Engine, *int64) {
	gin.SetMode(gin.TestMode)
	seen := new(int64)
	r := gin.New()
	r.GET("/protected", RequireToken(tokens), func(c *gin.Context) {
		*seen = UserIDFromContext(c)
		c.Status(http.StatusOK)
	})
	return r, seen
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireToken_MissingHeader(t *testing.T) {
	r, _ := newGuardedEngine(NewTokens([]byte("s"), time.Hour))

	w := doRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing header, got %d", w.Code)
	}
}

func TestRequireToken_EmptyBearer(t *testing.T) {
	r, _ := newGuardedEngine(NewTokens([]byte("s"), time.Hour))

	w := doRequest(r, "Bearer ")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for empty bearer token, got %d", w.Code)
	}
}

func TestRequireToken_InvalidToken(t *testing.T) {
	r, _ := newGuardedEngine(NewTokens([]byte("s"), time.Hour))

	w := doRequest(r, "Bearer garbage")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for invalid token, got %d", w.Code)
	}
}

func TestRequireToken_ExpiredToken(t *testing.T) {
	expired := &Tokens{secret: []byte("s"), ttl: -1 * time.Second}
	tok, err := expired.Issue(5)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	r, _ := newGuardedEngine(NewTokens([]byte("s"), time.Hour))

	w := doRequest(r, "Bearer "+tok)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", w.Code)
	}
}

func TestRequireToken_SchemeIsCaseInsensitive(t *testing.T) {
	tokens := NewTokens([]byte("s"), time.Hour)
	tok, err := tokens.Issue(11)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	r, seen := newGuardedEngine(tokens)

	w := doRequest(r, "bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for lowercase scheme, got %d", w.Code)
	}
	if *seen != 11 {
		t.Fatalf("handler saw user ID %d, want 11", *seen)
	}
}

func TestRequireToken_WrongScheme(t *testing.T) {
	tokens := NewTokens([]byte("s"), time.Hour)
	tok, err := tokens.Issue(12)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	r, _ := newGuardedEngine(tokens)

	// A credential was presented, so this is invalid rather than missing.
	w := doRequest(r, "Token "+tok)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong scheme, got %d", w.Code)
	}
}

func TestRequireToken_ValidToken(t *testing.T) {
	tokens := NewTokens([]byte("s"), time.Hour)
	tok, err := tokens.Issue(99)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	r, seen := newGuardedEngine(tokens)

	w := doRequest(r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", w.Code)
	}
	if *seen != 99 {
		t.Fatalf("handler saw user ID %d, want 99", *seen)
	}
}

func TestUserIDFromContext_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := UserIDFromContext(c); got != 0 {
		t.Fatalf("expected 0 for unset identity, got %d", got)
	}
}
