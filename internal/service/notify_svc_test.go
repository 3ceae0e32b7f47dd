package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGatewaySMSSender_NoRetryOnFailure(t *testing.T) {
	var calls int
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer gateway.Close()

	sender := NewGatewaySMSSender(gateway.URL, "test-key")
	err := sender.Send(context.Background(), "13900000001", "测试消息")
	if err == nil {
		t.Fatal("网关报错时发送应失败")
	}
	// 失败即失败，不重试
	if calls != 1 {
		t.Fatalf("网关应只被请求 1 次，实际 %d 次", calls)
	}
}

func TestGatewaySMSSender_Send(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	sender := NewGatewaySMSSender(gateway.URL, "test-key")
	if err := sender.Send(context.Background(), "13900000001", "测试消息"); err != nil {
		t.Fatalf("发送失败: %v", err)
	}
}
