package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/pkg/config"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.EngineConfig{
		DefaultSteps: 500,
		MaxSteps:     2000,
		DefaultPaths: 20000,
		MaxPaths:     500000,
		SweepPoints:  50,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := application.NewPricingService(cfg, logger, metrics.New("test"))

	r := gin.New()
	NewPricingHandler(svc).RegisterRoutes(r.Group(""))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPriceEndpoint(t *testing.T) {
	r := newTestRouter()

	t.Run("black-scholes", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/pricing/price", `{
			"parameters": {"spot": 100, "strike": 100, "maturity": 1, "rate": 0.05, "volatility": 0.2, "option_type": "CALL"},
			"model": "BLACK_SCHOLES"
		}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
		}

		var body struct {
			Code int `json:"code"`
			Data struct {
				Price string `json:"price"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Code != 0 {
			t.Fatalf("code: got %d", body.Code)
		}
		if !strings.HasPrefix(body.Data.Price, "10.45") {
			t.Fatalf("price: got %s, want ~10.45", body.Data.Price)
		}
	})

	// 零值标的是合法的退化输入，不能在绑定层被拒绝
	t.Run("zero spot passes binding", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/pricing/price", `{
			"parameters": {"spot": 0, "strike": 100, "maturity": 1, "rate": 0.05, "volatility": 0.2, "option_type": "CALL"},
			"model": "BLACK_SCHOLES"
		}`)
		if w.Code != http.StatusOK {
			t.Fatalf("zero spot rejected: status %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("negative spot rejected", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/pricing/price", `{
			"parameters": {"spot": -100, "strike": 100, "maturity": 1, "rate": 0.05, "volatility": 0.2, "option_type": "CALL"},
			"model": "BLACK_SCHOLES"
		}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", w.Code)
		}
	})

	t.Run("unknown model rejected", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/pricing/price", `{
			"parameters": {"spot": 100, "strike": 100, "maturity": 1, "rate": 0.05, "volatility": 0.2, "option_type": "CALL"},
			"model": "TRINOMIAL"
		}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", w.Code)
		}
	})
}
