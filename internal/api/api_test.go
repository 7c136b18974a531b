package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/abdulachik/descricoes/internal/app"
	"github.com/abdulachik/descricoes/internal/config"
	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/generator"
	"github.com/abdulachik/descricoes/internal/quota"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClient struct {
	text  string
	err   error
	calls int
}

func (f *fakeClient) Provider() string { return "fake" }

func (f *fakeClient) Complete(ctx context.Context, p string, mc generator.ModelConfig) (string, error) {
	f.calls++
	return f.text, f.err
}

func newTestServer(t *testing.T, client *fakeClient) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Provider:     config.ProviderGemini,
		GeminiAPIKey: "test-key",
		Temperature:  generator.DefaultTemperature,
		JWTSecret:    "0123456789abcdef",
		TokenTTL:     time.Hour,
		HistoryLimit: 20,
		CORSOrigins:  []string{"*"},
	}
	return NewRouter(app.Assemble(cfg, db.NewTestStore(t), client))
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func register(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "segredo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res app.AuthResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func productBody() gin.H {
	return gin.H{
		"name":        "Caneca Térmica",
		"category":    "Casa e Jardim",
		"tone":        "Persuasivo/Vendedor",
		"size":        "short",
		"template_id": "amazon_style",
		"format":      "Markdown",
	}
}

func TestAuth(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	register(t, h, "ana@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/api/auth/register", "", gin.H{"email": "ana@example.com", "password": "segredo"})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec, _ := do(t, h, http.MethodPost, "/api/auth/register", "", gin.H{"email": "ana", "password": "segredo"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "segredo"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", env.Status)

		rec, _ = do(t, h, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "errada"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("protected route needs token", func(t *testing.T) {
		rec, _ := do(t, h, http.MethodGet, "/api/quota", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec, _ = do(t, h, http.MethodGet, "/api/quota", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGenerateFlow(t *testing.T) {
	client := &fakeClient{text: "**Caneca** que mantém o café quente"}
	h := newTestServer(t, client)
	token := register(t, h, "bia@example.com")

	rec, env := do(t, h, http.MethodPost, "/api/descriptions", token, productBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res app.Result
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "**Caneca** que mantém o café quente", res.Text)
	assert.Equal(t, 4, res.Quota.Remaining)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	t.Run("history", func(t *testing.T) {
		rec, env := do(t, h, http.MethodGet, "/api/descriptions?limit=5", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var items []db.Description
		require.NoError(t, json.Unmarshal(env.Data, &items))
		require.Len(t, items, 1)
		assert.Equal(t, "Caneca Térmica", items[0].ProductName)

		rec, _ = do(t, h, http.MethodGet, "/api/descriptions?limit=abc", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("single description and page", func(t *testing.T) {
		path := "/api/descriptions/" + itoa(res.RecordID)
		rec, _ := do(t, h, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = do(t, h, http.MethodGet, path+"/page", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<strong>Caneca</strong>")

		other := register(t, h, "outra@example.com")
		rec, _ = do(t, h, http.MethodGet, path, other, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("csv export", func(t *testing.T) {
		rec, _ := do(t, h, http.MethodGet, "/api/descriptions/export.csv", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rec.Body.String(), "Caneca Térmica")
	})

	t.Run("analytics", func(t *testing.T) {
		rec, env := do(t, h, http.MethodGet, "/api/analytics", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), "Casa e Jardim")
	})

	t.Run("invalid input", func(t *testing.T) {
		body := productBody()
		body["name"] = ""
		rec, env := do(t, h, http.MethodPost, "/api/descriptions", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(env.Data), `"field":"name"`)
	})

	t.Run("clear", func(t *testing.T) {
		rec, env := do(t, h, http.MethodDelete, "/api/descriptions", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"removed":1}`, string(env.Data))
	})
}

func TestQuotaEnforcement(t *testing.T) {
	client := &fakeClient{text: "ok"}
	h := newTestServer(t, client)
	token := register(t, h, "cota@example.com")

	for i := 0; i < quota.FreeLimit; i++ {
		rec, _ := do(t, h, http.MethodPost, "/api/descriptions", token, productBody())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := do(t, h, http.MethodPost, "/api/descriptions", token, productBody())
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	var report quota.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.False(t, report.Allowed)
	assert.Equal(t, quota.FreeLimit, client.calls)

	t.Run("upgrade lifts the cap", func(t *testing.T) {
		rec, _ := do(t, h, http.MethodPut, "/api/account/plan", token, gin.H{"plan": "pro"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec, _ = do(t, h, http.MethodPost, "/api/descriptions", token, productBody())
		assert.Equal(t, http.StatusCreated, rec.Code)

		rec, env := do(t, h, http.MethodGet, "/api/quota", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var report quota.Report
		require.NoError(t, json.Unmarshal(env.Data, &report))
		assert.True(t, report.IsUnlimited())
	})

	t.Run("unknown plan", func(t *testing.T) {
		rec, _ := do(t, h, http.MethodPut, "/api/account/plan", token, gin.H{"plan": "gold"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"remote quota", &generator.Error{Code: generator.CodeQuotaExceeded, Message: "quota"}, http.StatusTooManyRequests},
		{"bad key", &generator.Error{Code: generator.CodeAuthentication, Message: "denied"}, http.StatusBadGateway},
		{"other", &generator.Error{Code: generator.CodeUnclassified, Message: "boom"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, &fakeClient{err: tt.err})
			token := register(t, h, "err@example.com")

			rec, env := do(t, h, http.MethodPost, "/api/descriptions", token, productBody())
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, string(env.Data), "code")

			rec, env = do(t, h, http.MethodGet, "/api/quota", token, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, string(env.Data), `"used":0`)
		})
	}
}

func TestPublicEndpoints(t *testing.T) {
	client := &fakeClient{}
	h := newTestServer(t, client)

	t.Run("catalog", func(t *testing.T) {
		rec, env := do(t, h, http.MethodGet, "/api/catalog", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), "shopee_mercado_livre")
		assert.Contains(t, string(env.Data), "Eletrônicos")
	})

	t.Run("preview", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/api/prompt/preview", "", productBody())
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), "Caneca Térmica")
		assert.Zero(t, client.calls)
	})

	t.Run("healthz", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("Token abc")
	assert.False(t, ok)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
