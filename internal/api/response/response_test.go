package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storelink_erp_v1/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	r := gin.New()
	r.GET("/t", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	r.ServeHTTP(w, req)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	return w, body
}

func TestOK(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		OK(c, gin.H{"id": 1})
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if string(body["status"]) != `"success"` {
		t.Fatalf("status 不符: %s", body["status"])
	}
}

func TestFail_AppErrorEmitsNullData(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Fail(c, apperr.NotFound("订单 %d 不存在", 42))
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际 %d", w.Code)
	}
	if string(body["status"]) != `"error"` {
		t.Fatalf("status 不符: %s", body["status"])
	}
	// 错误响应信封必须带 data 键且为 null
	raw, ok := body["data"]
	if !ok {
		t.Fatal("错误响应缺少 data 键")
	}
	if string(raw) != "null" {
		t.Fatalf("错误响应 data 应为 null，实际 %s", raw)
	}
}

func TestFail_UnknownErrorIsGeneric(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Fail(c, json.Unmarshal([]byte("{"), &struct{}{}))
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("期望 500，实际 %d", w.Code)
	}
	if string(body["message"]) != `"服务器内部错误"` {
		t.Fatalf("未分类错误应回泛化消息，实际 %s", body["message"])
	}
}
