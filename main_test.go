package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"salesproject-backend/clients"
	"salesproject-backend/config"
	"salesproject-backend/database"
	"salesproject-backend/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCEP struct{ calls int }

func (s *stubCEP) Lookup(_ context.Context, postalCode string) (*clients.CEPDetails, error) {
	s.calls++
	if postalCode != "01310-100" {
		return nil, nil
	}
	return &clients.CEPDetails{Street: "Avenida Paulista", Neighborhood: "Bela Vista", City: "São Paulo", State: "SP"}, nil
}

func setupApp(t *testing.T) (*fiber.App, *stubCEP) {
	t.Helper()
	middlewares.ConfigureJWT("test-secret", time.Hour)

	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedAdmin(db, "admin", "secret", []string{"ROLE_ADMIN"}))

	cfg := config.Config{
		BodyLimitBytes:  1 << 20,
		AllowedOrigins:  "*",
		RateLimitMax:    1000,
		RateLimitWindow: time.Minute,
		ViewUsername:    "aluno",
		ViewAvatarURL:   "https://example.com/avatar.png",
	}
	cep := &stubCEP{}
	return newApp(cfg, db, cep), cep
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func jsonRequest(method, target, body, token string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.Header.Set("Accept", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return req
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := do(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"secret"}`, ""))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out["token"].(string)
}

func TestLogin(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := do(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"secret"}`, ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out["token"])
	assert.Equal(t, "Bearer", out["type"])
	assert.Equal(t, "admin", out["username"])
	assert.Equal(t, []any{"ROLE_ADMIN"}, out["roles"])

	resp, body = do(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"invalid credentials"}`, string(body))

	resp, body = do(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"secret"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"invalid credentials"}`, string(body))

	resp, body = do(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"ab"}`, ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &verr))
	assert.Equal(t, "validation failed", verr.Message)
	assert.Equal(t, "must have at least 3 characters", verr.Errors["username"])
	assert.Equal(t, "is required", verr.Errors["password"])
}

func TestUserProfileRequiresToken(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := do(t, app, jsonRequest(http.MethodGet, "/api/users/admin", "", ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, jsonRequest(http.MethodGet, "/api/users/admin", "", "not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, app)
	resp, body := do(t, app, jsonRequest(http.MethodGet, "/api/users/admin", "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"full_name"`)

	resp, _ = do(t, app, jsonRequest(http.MethodGet, "/api/users/nobody", "", token))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomerDetailUnknownCpf(t *testing.T) {
	app, cep := setupApp(t)

	resp, body := do(t, app, jsonRequest(http.MethodGet, "/clientes/detalhe/12345678900", "", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view map[string]any
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "12345678900", view["cpf"])
	for _, k := range []string{"nome", "cep", "numero", "complemento", "telefone", "logradouro", "bairro", "localidade", "estado"} {
		assert.Empty(t, view[k], k)
	}
	assert.Zero(t, cep.calls)

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/clientes/detalhe?cpf=12345678900", "", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"cpf":"12345678900"`)
}

func TestCustomerSaveThenOrders(t *testing.T) {
	app, cep := setupApp(t)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/pedidos/detalhe/111", nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/clientes/detalhe/111", resp.Header.Get("Location"))

	resp, _ = do(t, app, formRequest("/clientes/save", url.Values{
		"cpf":      {"111"},
		"nome":     {"Maria"},
		"cep":      {"01310-100"},
		"numero":   {"1000"},
		"telefone": {"11 99999-0000"},
	}))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/pedidos/detalhe/111", resp.Header.Get("Location"))

	resp, body := do(t, app, formRequest("/clientes/save", url.Values{"nome": {"Sem CPF"}}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"validation failed","errors":{"cpf":"is required"}}`, string(body))

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/clientes/detalhe/111", "", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view map[string]any
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "Maria", view["nome"])
	assert.Equal(t, "Avenida Paulista", view["logradouro"])
	assert.Equal(t, "SP", view["estado"])
	assert.Equal(t, 1, cep.calls)

	resp, _ = do(t, app, formRequest("/pedidos/save", url.Values{
		"cpf":       {"111"},
		"status":    {"PENDENTE_ENVIO"},
		"descricao": {"two boxes"},
	}))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/pedidos/detalhe/111", resp.Header.Get("Location"))

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/pedidos/detalhe/111", "", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Cliente map[string]any   `json:"cliente"`
		Pedidos []map[string]any `json:"pedidos"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "Maria", detail.Cliente["nome"])
	require.Len(t, detail.Pedidos, 1)
	assert.Equal(t, "PENDENTE_ENVIO", detail.Pedidos[0]["status"])
	assert.Equal(t, "two boxes", detail.Pedidos[0]["descricao"])

	resp, _ = do(t, app, formRequest("/pedidos/save", url.Values{"cpf": {"111"}, "status": {"LOST"}}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, formRequest("/pedidos/save", url.Values{"cpf": {"999"}, "status": {"FINALIZADO"}}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerRenderedPages(t *testing.T) {
	app, _ := setupApp(t)

	for _, path := range []string{"/clientes", "/clientes/detalhe/42", "/pedidos"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept", "text/html")
		resp, body := do(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html", path)
		assert.Contains(t, string(body), "aluno", path)
		assert.Contains(t, string(body), "https://example.com/avatar.png", path)
	}
}

func TestProjectEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := do(t, app, jsonRequest(http.MethodGet, "/project", "", ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, app)

	resp, body := do(t, app, jsonRequest(http.MethodPost, "/project",
		`{"name":"Site","description":"new site","start_date":"2024-01-01","end_date":"2024-02-01","status":"WIP","tasks":[{"name":"layout","priority":"HIGH"}]}`, token))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created struct {
		ID    uint             `json:"id"`
		Tasks []map[string]any `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotZero(t, created.ID)
	require.Len(t, created.Tasks, 1)

	for i := 0; i < 2; i++ {
		resp, _ = do(t, app, jsonRequest(http.MethodPost, "/project", fmt.Sprintf(`{"name":"p%d","status":"COMPLETED"}`, i), token))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/project?pageSize=2&pageNumber=1", "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Content       []map[string]any `json:"content"`
		TotalElements int64            `json:"total_elements"`
		TotalPages    int              `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Content, 1)
	assert.EqualValues(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.NotContains(t, page.Content[0], "description")
	assert.NotContains(t, page.Content[0], "tasks")

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/project?pageSize=10&pageNumber=922337203685477581", "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Empty(t, page.Content)
	assert.EqualValues(t, 3, page.TotalElements)

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/project/by-task-priority/HIGH?pageSize=10&pageNumber=922337203685477581", "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"content":[]`)

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/project?status=completed", "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &page))
	assert.EqualValues(t, 2, page.TotalElements)

	resp, _ = do(t, app, jsonRequest(http.MethodGet, "/project?status=DONE", "", token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, jsonRequest(http.MethodGet, fmt.Sprintf("/project/%d", created.ID), "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"description":"new site"`)
	assert.Contains(t, string(body), `"name":"layout"`)

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/project/9999", "", token))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"project 9999 not found"}`, string(body))

	resp, _ = do(t, app, jsonRequest(http.MethodGet, "/project/abc", "", token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/project/status-not/COMPLETED", "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"total_elements":1`)

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/project/by-task-priority/HIGH", "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), fmt.Sprintf(`"content":[%d]`, created.ID))

	resp, body = do(t, app, jsonRequest(http.MethodGet, "/project/latest?start=2023-12-01&end=2024-12-31&task=layout", "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"Site"`)

	resp, body = do(t, app, jsonRequest(http.MethodPatch, fmt.Sprintf("/project/%d", created.ID), `{"status":"REVIEW"}`, token))
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"REVIEW"`)
	assert.Contains(t, string(body), `"description":"new site"`)

	resp, body = do(t, app, jsonRequest(http.MethodPost, fmt.Sprintf("/project/%d/tasks", created.ID), `{"name":"deploy","priority":"LOW"}`, token))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var task struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &task))

	resp, _ = do(t, app, jsonRequest(http.MethodDelete, fmt.Sprintf("/project/%d/tasks/%d", created.ID, task.ID), "", token))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, jsonRequest(http.MethodDelete, fmt.Sprintf("/project/%d", created.ID), "", token))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, jsonRequest(http.MethodGet, fmt.Sprintf("/project/%d", created.ID), "", token))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFailedMutationRollsBack(t *testing.T) {
	app, _ := setupApp(t)
	token := login(t, app)

	resp, body := do(t, app, jsonRequest(http.MethodPost, "/project", `{"name":"a","tasks":[{"name":"t"}]}`, token))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var a struct {
		Tasks []struct {
			ID uint `json:"id"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(body, &a))
	require.Len(t, a.Tasks, 1)

	resp, _ = do(t, app, jsonRequest(http.MethodPost, "/project", "{", token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, jsonRequest(http.MethodPost, "/project", `{"name":"b"}`, token))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var b struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &b))

	// Adopting a task owned by another project fails and leaves nothing behind.
	resp, _ = do(t, app, jsonRequest(http.MethodPut, fmt.Sprintf("/project/%d", b.ID),
		fmt.Sprintf(`{"name":"renamed","tasks":[{"id":%d,"name":"stolen"}]}`, a.Tasks[0].ID), token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, jsonRequest(http.MethodGet, fmt.Sprintf("/project/%d", b.ID), "", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"b"`, "rename rolled back with the rejected task set")
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "salesproject_http_requests_total")
}

func TestPanicIsLoggedAndCounted(t *testing.T) {
	app, _ := setupApp(t)
	app.Get("/panic", func(c *fiber.Ctx) error { panic("kaboom") })

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"internal server error"}`, string(body))

	_, body = do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, string(body), `salesproject_http_requests_total{method="GET",route="/panic",status="500"}`)
}
