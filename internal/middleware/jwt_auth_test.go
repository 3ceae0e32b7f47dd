package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetJWTConfig(&JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: 30 * time.Minute,
		Issuer:         "storelink-erp-test",
	})
}

// allowAllResolver 所有主体都视为存在
type allowAllResolver struct{}

func (allowAllResolver) SubjectExists(ctx context.Context, userID int64, role string) (bool, error) {
	return true, nil
}

// denyAllResolver 模拟主体已被删除
type denyAllResolver struct{}

func (denyAllResolver) SubjectExists(ctx context.Context, userID int64, role string) (bool, error) {
	return false, nil
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "张三", model.RoleOwner)
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID 应为 42，实际 %d", claims.UserID)
	}
	if claims.Role != model.RoleOwner {
		t.Fatalf("Role 应为 owner，实际 %s", claims.Role)
	}
	if claims.Name != "张三" {
		t.Fatalf("Name 应为 张三，实际 %s", claims.Name)
	}
	if claims.Subject != "access" {
		t.Fatalf("Subject 应为 access，实际 %s", claims.Subject)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Fatalf("非法 token 应解析失败")
	}
}

func newAuthedRouter(resolver SubjectResolver) *gin.Engine {
	r := gin.New()
	r.GET("/ping", JWTAuth(resolver), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	r := newAuthedRouter(allowAllResolver{})
	token, _ := GenerateAccessToken(7, "李四", model.RoleStoreMan)

	w := doRequest(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("有效 token 应放行，实际 %d: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := newAuthedRouter(allowAllResolver{})
	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("缺 Authorization 应 401，实际 %d", w.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	r := newAuthedRouter(allowAllResolver{})
	if w := doRequest(r, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("非 Bearer 头应 401，实际 %d", w.Code)
	}
	if w := doRequest(r, "Bearer bad.token.here"); w.Code != http.StatusUnauthorized {
		t.Fatalf("坏 token 应 401，实际 %d", w.Code)
	}
}

func TestJWTAuth_DeletedSubjectRejected(t *testing.T) {
	r := newAuthedRouter(denyAllResolver{})
	token, _ := GenerateAccessToken(7, "李四", model.RoleOwner)

	w := doRequest(r, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("主体已删除的 token 应 401，实际 %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin-only", JWTAuth(allowAllResolver{}), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	ownerToken, _ := GenerateAccessToken(1, "店主", model.RoleOwner)
	adminToken, _ := GenerateAccessToken(0, "admin", model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("店主访问管理员接口应 403，实际 %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("管理员应放行，实际 %d", w.Code)
	}
}
