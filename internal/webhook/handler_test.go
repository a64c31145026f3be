package webhook

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lexcrm/platform/logger"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewHandler(svc, logger.New("test"))
	engine.POST("/api/v1/webhook/voice-calls", handler.HandleVoiceCallEvent)
	return engine
}

func postWebhook(t *testing.T, engine *gin.Engine, body string) (int, VoiceCallResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/voice-calls", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var resp VoiceCallResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, resp
}

func TestWebhookAlwaysReturns200(t *testing.T) {
	t.Run("valid analyzed event", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		code, resp := postWebhook(t, newTestRouter(svc), scenarioAPayload)
		if code != http.StatusOK || !resp.Success {
			t.Errorf("got code=%d success=%v, want 200 success=true", code, resp.Success)
		}
	})

	t.Run("unknown event acknowledged", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		code, resp := postWebhook(t, newTestRouter(svc), `{"event": "call_started", "call_id": "x"}`)
		if code != http.StatusOK || !resp.Success {
			t.Errorf("got code=%d success=%v, want 200 success=true", code, resp.Success)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		code, resp := postWebhook(t, newTestRouter(svc), `{not json`)
		if code != http.StatusOK || resp.Success {
			t.Errorf("got code=%d success=%v, want 200 success=false", code, resp.Success)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, leads, _, _ := newTestService()
		leads.err = errors.New("db down")
		code, resp := postWebhook(t, newTestRouter(svc), `{"event": "call_ended", "call_id": "x"}`)
		if code != http.StatusOK || resp.Success {
			t.Errorf("got code=%d success=%v, want 200 success=false", code, resp.Success)
		}
	})
}
