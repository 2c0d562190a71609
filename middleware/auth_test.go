package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quillapi/quill/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("REDIS_HOST", "")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newAuthTestRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(ctx *gin.Context) {
		id, _ := ctx.Get(ContextUserIDKey)
		ctx.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func doProtected(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	r := newAuthTestRouter()
	if w := doProtected(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	r := newAuthTestRouter()
	for _, h := range []string{"Token abc", "Bearer", "Bearer "} {
		if w := doProtected(r, h); w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", h, w.Code)
		}
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	r := newAuthTestRouter()
	if w := doProtected(r, "Bearer not.a.jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	r := newAuthTestRouter()
	token, err := utils.GenerateToken(7, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if w := doProtected(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	r := newAuthTestRouter()
	token, err := utils.GenerateToken(7, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	utils.BlacklistToken(claims.ID, claims.ExpiresAt.Time)

	if w := doProtected(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
