package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errkit/exception"
	"github.com/kbukum/errkit/logger"
	"github.com/kbukum/errkit/server"
	"github.com/kbukum/errkit/server/middleware"
	"github.com/kbukum/errkit/validation"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	IsSuccess  bool            `json:"is_success"`
	Error      json.RawMessage `json:"error"`
	Response   json.RawMessage `json:"response"`
}

type record struct {
	Type    string              `json:"type"`
	Code    string              `json:"code"`
	Detail  string              `json:"detail"`
	Attr    *string             `json:"attr"`
	Details map[string][]string `json:"details"`
}

type signup struct {
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,phone"`
	NationalCode string `json:"national_code" validate:"omitempty,national_code"`
}

func newServer(t *testing.T, cfg server.Config) *server.Server {
	t.Helper()
	s := exception.DefaultSettings()
	s.FarsiException = false
	h, err := exception.New(s, exception.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	cfg.ApplyDefaults()
	srv, err := server.New(cfg, h, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	srv.ApplyMiddleware()
	srv.RegisterHealth("test")

	r := srv.GinEngine()
	r.GET("/items", func(c *gin.Context) {
		if err := server.BindQuery(c, validation.DefaultQueryOptions(), "page"); err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, []string{"a", "b"})
	})
	r.POST("/signup", func(c *gin.Context) {
		var req signup
		if err := server.BindJSON(c, &req); err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondCreated(c, gin.H{"email": req.Email})
	})
	r.GET("/raw", middleware.SkipEnvelope(), func(c *gin.Context) {
		server.RespondOK(c, gin.H{"raw": true})
	})
	r.POST("/legacy", func(c *gin.Context) {
		server.Respond(c, http.StatusConflict, gin.H{"status_code": 409, "message": "Conflict", "is_success": false})
	})
	r.DELETE("/items/:id", func(c *gin.Context) {
		server.RespondNoContent(c)
	})
	return srv
}

func send(h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) (envelope, record) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, rr.Body.String())
	}
	var rec record
	if len(env.Error) > 0 && string(env.Error) != "null" {
		if err := json.Unmarshal(env.Error, &rec); err != nil {
			t.Fatal(err)
		}
	}
	return env, rec
}

func TestServer_SuccessEnvelope(t *testing.T) {
	srv := newServer(t, server.Config{})
	rr := send(srv.Handler(), http.MethodGet, "/items?page=1", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	env, _ := decodeEnvelope(t, rr)
	if !env.IsSuccess || env.StatusCode != 200 || env.Message != "OK" {
		t.Errorf("unexpected envelope %+v", env)
	}
	if string(env.Error) != "null" || string(env.Response) != `["a","b"]` {
		t.Errorf("error=%s response=%s", env.Error, env.Response)
	}
}

func TestServer_PrebuiltEnvelopeNotWrappedTwice(t *testing.T) {
	srv := newServer(t, server.Config{})
	rr := send(srv.Handler(), http.MethodPost, "/legacy", "", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	env, _ := decodeEnvelope(t, rr)
	if env.StatusCode != 409 || env.Message != "Conflict" {
		t.Errorf("unexpected envelope %+v", env)
	}
	if len(env.Response) != 0 {
		t.Errorf("body was wrapped again: %s", rr.Body.String())
	}
}

func TestServer_QueryParameterError(t *testing.T) {
	srv := newServer(t, server.Config{})
	rr := send(srv.Handler(), http.MethodGet, "/items", "", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	_, rec := decodeEnvelope(t, rr)
	if rec.Code != "invalid_query_parameter" || rec.Detail != "page Query parameter is required." {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestServer_NotFoundAndMethodNotAllowed(t *testing.T) {
	srv := newServer(t, server.Config{})

	rr := send(srv.Handler(), http.MethodGet, "/nope", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if _, rec := decodeEnvelope(t, rr); rec.Code != "not_found" {
		t.Errorf("code = %q", rec.Code)
	}

	rr = send(srv.Handler(), http.MethodPut, "/signup", "", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	if _, rec := decodeEnvelope(t, rr); rec.Code != "method_not_allowed" || rec.Detail != `Method "PUT" not allowed.` {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestServer_BindJSON(t *testing.T) {
	srv := newServer(t, server.Config{})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
		wantAttr    string
	}{
		{"created", "application/json", `{"email":"a@b.co","phone":"09121234567"}`, 201, "", ""},
		{"malformed", "application/json", `{"email":`, 400, "parse_error", ""},
		{"unknown field", "application/json", `{"email":"a@b.co","phone":"09121234567","x":1}`, 400, "parse_error", ""},
		{"wrong media type", "text/csv", "email,phone", 415, "unsupported_media_type", ""},
		{"missing email", "application/json", `{"phone":"09121234567"}`, 400, "required", "email"},
		{"bad phone", "application/json; charset=utf-8", `{"email":"a@b.co","phone":"123"}`, 400, "invalid_phone_number", "phone"},
		{"bad national code", "application/json", `{"email":"a@b.co","phone":"09121234567","national_code":"1234567890"}`, 400, "invalid_national_code", "national_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := send(srv.Handler(), http.MethodPost, "/signup", tt.contentType, tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			env, rec := decodeEnvelope(t, rr)
			if tt.wantCode == "" {
				if !env.IsSuccess {
					t.Errorf("expected success, got %+v", env)
				}
				return
			}
			if rec.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", rec.Code, tt.wantCode)
			}
			if tt.wantAttr != "" && (rec.Attr == nil || *rec.Attr != tt.wantAttr) {
				t.Errorf("attr = %v, want %q", rec.Attr, tt.wantAttr)
			}
		})
	}
}

func TestServer_SkipEnvelopeOnSuccess(t *testing.T) {
	srv := newServer(t, server.Config{})
	rr := send(srv.Handler(), http.MethodGet, "/raw", "", "")
	if strings.TrimSpace(rr.Body.String()) != `{"raw":true}` {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestServer_NoContent(t *testing.T) {
	srv := newServer(t, server.Config{})
	rr := send(srv.Handler(), http.MethodDelete, "/items/1", "", "")
	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Errorf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestServer_Health(t *testing.T) {
	srv := newServer(t, server.Config{JWTSecret: "secret"})
	rr := send(srv.Handler(), http.MethodGet, "/health", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("health should skip auth, got %d", rr.Code)
	}

	rr = send(srv.Handler(), http.MethodGet, "/items?page=1", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}
}

func TestServer_RateLimit(t *testing.T) {
	srv := newServer(t, server.Config{RequestsPerMinute: 1})
	send(srv.Handler(), http.MethodGet, "/items?page=1", "", "")
	rr := send(srv.Handler(), http.MethodGet, "/items?page=1", "", "")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}

func TestServer_StartStop(t *testing.T) {
	srv, err := server.New(server.Config{Host: "127.0.0.1"}, nil, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	srv.ApplyMiddleware()
	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     server.Config
		wantErr bool
	}{
		{"defaults", server.Config{}, false},
		{"bad port", server.Config{Port: 70000}, true},
		{"negative timeout", server.Config{ReadTimeout: -1}, true},
		{"negative rate", server.Config{RequestsPerMinute: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "defaults" {
				tt.cfg.ApplyDefaults()
			}
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
