package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/server/ratelimit"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/jonathan/portfolio-builder/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html><head><title>Ada Lovelace</title></head>
<body>
<h1>Ada Lovelace</h1>
<h2>Analyst</h2>
<section><h2>Skills</h2><ul><li>Mathematics</li><li>Poetry</li></ul></section>
<section><h2>Projects</h2></section>
</body></html>`

// fakeLLM counts calls and returns a canned reply
type fakeLLM struct {
	calls    atomic.Int32
	response string
	err      error
	block    chan struct{}
}

func (f *fakeLLM) Complete(_ context.Context, _ *llm.Request) (string, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

type testEnv struct {
	server  *Server
	handler http.Handler
	llm     *fakeLLM
	github  *atomic.Int32
	service *portfolio.Service
}

type envOption func(*Config)

func newTestEnv(t *testing.T, client *fakeLLM, opts ...envOption) *testEnv {
	t.Helper()

	githubCalls := &atomic.Int32{}
	gh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		githubCalls.Add(1)
		if strings.Contains(r.URL.Path, "/ghost") {
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/repos") {
			_, _ = w.Write([]byte(`[{"name":"engine","description":"Difference engine","html_url":"https://github.com/ada/engine","stargazers_count":5,"forks_count":1,"language":"Go","fork":false}]`))
			return
		}
		_, _ = w.Write([]byte(`{"login":"ada","name":"Ada Lovelace","html_url":"https://github.com/ada","created_at":"2015-03-01T00:00:00Z"}`))
	}))
	t.Cleanup(gh.Close)

	normalizer := ingestion.NewNormalizer(ingestion.NewGitHubClient(gh.URL, ""), nil)
	service := portfolio.NewService(validation.New(0), normalizer, client)

	cfg := Config{
		Service:   service,
		RateLimit: &ratelimit.Config{Enabled: false},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)

	return &testEnv{server: s, handler: s.Handler(), llm: client, github: githubCalls, service: service}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:5555"
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{})
	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, int32(0), env.llm.calls.Load())
}

func TestGenerate_Resume(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: "```html\n" + testPage + "\n```"})

	rec := env.postJSON(t, "/generate", map[string]string{"resumeText": "Ada Lovelace\nAnalyst"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[GenerateResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, testPage, body.Code)
	assert.Equal(t, "Ada Lovelace", body.Metadata.Name)
	assert.Equal(t, "Analyst", body.Metadata.Title)
	assert.Equal(t, "resume", body.Metadata.Source)
	assert.Equal(t, []string{"Mathematics", "Poetry"}, body.Metadata.Skills)
	assert.NotNil(t, body.Metadata.GeneratedAt)
	assert.Empty(t, body.Warnings)
	assert.NoError(t, schemas.ValidateMetadata(body.Metadata))
	assert.Empty(t, rec.Header().Get("X-Profile-Demo"))
}

func TestGenerate_GitHub(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	rec := env.postJSON(t, "/generate", map[string]string{"githubUsername": "ada", "resumeText": "ignored"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[GenerateResponse](t, rec)
	assert.Equal(t, "github", body.Metadata.Source)
	assert.Equal(t, "ada", body.Metadata.GitHub)
	assert.Equal(t, "Software Developer (Go)", body.Metadata.Title)
	assert.NoError(t, schemas.ValidateMetadata(body.Metadata))
	assert.Equal(t, int32(2), env.github.Load())
}

func TestGenerate_LinkedInDemo(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	rec := env.postJSON(t, "/generate", map[string]string{"linkedInUrl": "https://linkedin.com/in/ada"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "true", rec.Header().Get("X-Profile-Demo"))
	body := decodeBody[GenerateResponse](t, rec)
	assert.Contains(t, body.Warnings, portfolio.DemoWarning)
	assert.Equal(t, "linkedin", body.Metadata.Source)
}

func TestGenerate_LinkedInExport(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	export := map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"headline":  "Analyst",
		"skills":    []string{"Mathematics"},
	}
	rec := env.postJSON(t, "/generate", map[string]any{"linkedInData": export})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[GenerateResponse](t, rec)
	assert.Equal(t, "linkedin", body.Metadata.Source)
	assert.Empty(t, rec.Header().Get("X-Profile-Demo"))
}

func TestGenerate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{
			name:    "no input",
			body:    map[string]string{},
			wantMsg: "Either resume text, LinkedIn URL, LinkedIn data, or GitHub username is required",
		},
		{
			name:    "resume too long",
			body:    map[string]string{"resumeText": strings.Repeat("x", 10001)},
			wantMsg: "Resume text exceeds maximum length of 10000 characters",
		},
		{
			name:    "bad linkedin url",
			body:    map[string]string{"linkedInUrl": "https://linkedin.com/company/acme"},
			wantMsg: "Invalid LinkedIn URL format",
		},
		{
			name:    "bad github username",
			body:    map[string]string{"githubUsername": "bad--name"},
			wantMsg: "Invalid GitHub username format",
		},
		{
			name:    "malformed json",
			body:    "not an object",
			wantMsg: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, &fakeLLM{response: testPage})

			rec := env.postJSON(t, "/generate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			body := decodeBody[ErrorResponse](t, rec)
			assert.False(t, body.Success)
			assert.Contains(t, body.Message, tt.wantMsg)

			assert.Equal(t, int32(0), env.llm.calls.Load(), "completion service must not be called")
			assert.Equal(t, int32(0), env.github.Load(), "github must not be called")
		})
	}
}

func TestGenerate_Timeout(t *testing.T) {
	client := &fakeLLM{response: testPage, block: make(chan struct{})}
	t.Cleanup(func() { close(client.block) })
	env := newTestEnv(t, client)
	env.service.GenerateTimeout = 50 * time.Millisecond

	start := time.Now()
	rec := env.postJSON(t, "/generate", map[string]string{"resumeText": "Ada"})
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, env.service.GenerateTimeout)
	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "Portfolio generation timed out. Please try with shorter text or fewer details.", body.Message)
}

func TestGenerate_GitHubNotFound(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	rec := env.postJSON(t, "/generate", map[string]string{"githubUsername": "ghost"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody[ErrorResponse](t, rec)
	assert.Contains(t, body.Message, "try another input method")
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, int32(0), env.llm.calls.Load())
}

func TestGenerate_MalformedLinkedInExport(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	rec := env.postJSON(t, "/generate", map[string]any{"linkedInData": "{ definitely not json or csv"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, int32(0), env.llm.calls.Load())
}

func TestGenerate_CompletionFailure(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{err: &types.UpstreamError{Service: types.ServiceCompletion, StatusCode: 500, Message: "boom"}})

	rec := env.postJSON(t, "/generate", map[string]string{"resumeText": "Ada"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "Error connecting to AI service. Please try again later.", body.Message)
	assert.Contains(t, body.Error, "boom")
}

func TestGenerate_Unclassified(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{err: errors.New("unexpected EOF")})

	rec := env.postJSON(t, "/generate", map[string]string{"resumeText": "Ada"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "Error generating portfolio", body.Message)
	assert.Equal(t, "unexpected EOF", body.Error)
}

func TestGenerate_IncompleteHTMLWarns(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: "<div>Ada</div>"})

	rec := env.postJSON(t, "/generate", map[string]string{"resumeText": "Ada"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[GenerateResponse](t, rec)
	assert.Equal(t, "<div>Ada</div>", body.Code)
	assert.NotEmpty(t, body.Warnings)
}

func TestGenerateStream(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	rec := env.postJSON(t, "/generate/stream", map[string]string{"resumeText": "Ada"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	out := rec.Body.String()
	assert.Contains(t, out, "event: step\n")
	assert.Contains(t, out, `"step":"ingest"`)
	assert.Contains(t, out, "event: complete\n")
	assert.NotContains(t, out, "event: error\n")
}

func TestGenerateStream_ValidationIsPlainJSON(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	rec := env.postJSON(t, "/generate/stream", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestGenerateStream_UpstreamError(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{err: &types.UpstreamError{Service: types.ServiceCompletion, Message: "down"}})

	rec := env.postJSON(t, "/generate/stream", map[string]string{"resumeText": "Ada"})
	out := rec.Body.String()
	assert.Contains(t, out, "event: error\n")
	assert.Contains(t, out, `"status":503`)
}

func TestUpdate(t *testing.T) {
	updated := "<html><body><h1 style=\"color:blue\">Ada</h1></body></html>"
	env := newTestEnv(t, &fakeLLM{response: "```\n" + updated + "\n```"})

	rec := env.postJSON(t, "/update", map[string]string{"message": "Make the header blue", "currentCode": testPage})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[UpdateResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, updated, body.Code)
	assert.NotEmpty(t, body.Message)
}

func TestUpdate_MissingFields(t *testing.T) {
	for _, body := range []map[string]string{
		{"message": "hi"},
		{"currentCode": "<html></html>"},
		{},
	} {
		env := newTestEnv(t, &fakeLLM{response: testPage})
		rec := env.postJSON(t, "/update", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Both message and currentCode are required", decodeBody[ErrorResponse](t, rec).Message)
		assert.Equal(t, int32(0), env.llm.calls.Load())
	}
}

func TestUpdate_Unclassified(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{err: errors.New("boom")})

	rec := env.postJSON(t, "/update", map[string]string{"message": "x", "currentCode": "<html></html>"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error updating portfolio", decodeBody[ErrorResponse](t, rec).Message)
}

func TestPublish_AcceptsGeneratedOutput(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	gen := env.postJSON(t, "/generate", map[string]string{"resumeText": "Ada Lovelace"})
	require.Equal(t, http.StatusOK, gen.Code)
	generated := decodeBody[GenerateResponse](t, gen)

	rec := env.postJSON(t, "/publish", map[string]any{
		"title":      "My Portfolio",
		"slug":       "ada-lovelace",
		"visibility": "public",
		"domain":     "ada.example.com",
		"code":       generated.Code,
		"metadata":   generated.Metadata,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[PublishResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Portfolio successfully published", body.Message)
	require.NotNil(t, body.Data)
	assert.Equal(t, "https://portfolioai.com/ada-lovelace", body.Data.URL)
	assert.Equal(t, "https://ada.example.com", body.Data.CustomDomain)
	assert.Equal(t, "Ada Lovelace", body.Data.DocumentTitle)
	assert.Equal(t, 2, body.Data.Sections)
	assert.NotEmpty(t, body.Data.ID)
	assert.NoError(t, schemas.ValidatePublished(body.Data))
}

func TestPublish_AcceptsGeneratedLinkedInOutput(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage})

	// export without a Headline column
	gen := env.postJSON(t, "/generate", map[string]string{"linkedInData": "First Name,Last Name\nAda,Lovelace\n"})
	require.Equal(t, http.StatusOK, gen.Code, gen.Body.String())
	generated := decodeBody[GenerateResponse](t, gen)
	assert.Equal(t, "Ada Lovelace", generated.Metadata.Name)
	assert.NotEmpty(t, generated.Metadata.Title)
	require.NoError(t, schemas.ValidateMetadata(generated.Metadata))

	rec := env.postJSON(t, "/publish", map[string]any{
		"title":      "My Portfolio",
		"slug":       "ada-linkedin",
		"visibility": "public",
		"code":       generated.Code,
		"metadata":   generated.Metadata,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[PublishResponse](t, rec).Success)
}

func TestPublish_Failures(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{"title": "T", "slug": "ada", "visibility": "public", "code": testPage}
	}

	tests := []struct {
		name       string
		mutate     func(map[string]any)
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing code",
			mutate:     func(b map[string]any) { delete(b, "code") },
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Missing required fields",
		},
		{
			name:       "bad slug",
			mutate:     func(b map[string]any) { b["slug"] = "Ada Lovelace" },
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Slug can only contain lowercase letters, numbers, and hyphens",
		},
		{
			name:       "bad domain",
			mutate:     func(b map[string]any) { b["domain"] = "not a domain" },
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid domain format",
		},
		{
			name:       "reserved slug",
			mutate:     func(b map[string]any) { b["slug"] = "dashboard" },
			wantStatus: http.StatusConflict,
			wantMsg:    "This URL is already taken. Please choose another one.",
		},
		{
			name:       "bad metadata",
			mutate:     func(b map[string]any) { b["metadata"] = map[string]any{"name": "Ada", "source": "fax"} },
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid portfolio metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, &fakeLLM{})
			body := valid()
			tt.mutate(body)

			rec := env.postJSON(t, "/publish", body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody[ErrorResponse](t, rec).Message)
		})
	}
}

type takenSlugs map[string]bool

func (s takenSlugs) SlugAvailable(_ context.Context, slug string) (bool, error) {
	return !s[slug], nil
}

func TestPublish_InjectedSlugChecker(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{}, func(c *Config) {
		c.SlugChecker = takenSlugs{"ada": true}
		c.PublishBaseURL = "https://folio.example.com/"
	})

	body := map[string]any{"title": "T", "slug": "ada", "visibility": "unlisted", "code": testPage}
	assert.Equal(t, http.StatusConflict, env.postJSON(t, "/publish", body).Code)

	body["slug"] = "dashboard"
	rec := env.postJSON(t, "/publish", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://folio.example.com/dashboard", decodeBody[PublishResponse](t, rec).Data.URL)
}

func TestPublish_RequiresToken(t *testing.T) {
	jwtCfg, err := config.NewJWTConfig(testJWTSecret, "", 1)
	require.NoError(t, err)
	env := newTestEnv(t, &fakeLLM{}, func(c *Config) { c.JWT = jwtCfg })

	body := map[string]any{"title": "T", "slug": "ada", "visibility": "public", "code": testPage}
	assert.Equal(t, http.StatusUnauthorized, env.postJSON(t, "/publish", body).Code)

	token, err := NewJWTService(jwtCfg).GenerateToken("user-1", "")
	require.NoError(t, err)
	rec := env.postJSON(t, "/publish", body, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// generate stays public
	gen := env.postJSON(t, "/generate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, gen.Code)
}

func TestResumeFile(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Ada Lovelace\nAnalyst\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resume/pdf", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody[ResumeTextResponse](t, rec)
	assert.True(t, body.Success)
	assert.Contains(t, body.Text, "Ada Lovelace")
}

func TestResumeFile_Errors(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{})

	// not multipart
	rec := env.postJSON(t, "/resume/pdf", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unreadable PDF
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "resume.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("this is not a pdf"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resume/pdf", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRateLimit_Scenario(t *testing.T) {
	env := newTestEnv(t, &fakeLLM{response: testPage}, func(c *Config) {
		c.RateLimit = &ratelimit.Config{
			Enabled:         true,
			Limit:           5,
			Window:          time.Minute,
			MaxKeys:         10,
			EndpointConfigs: ratelimit.DefaultEndpointConfigs(5, time.Minute),
		}
	})
	clock := &stepClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	env.server.rateLimiter.SetClock(clock.Now)

	body := map[string]string{"resumeText": "Ada"}
	for i := 0; i < 5; i++ {
		rec := env.postJSON(t, "/generate", body)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := env.postJSON(t, "/generate", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, int32(5), env.llm.calls.Load())

	// health is never limited
	health := httptest.NewRecorder()
	healthReq := httptest.NewRequest(http.MethodGet, "/health", nil)
	healthReq.RemoteAddr = "203.0.113.7:5555"
	env.handler.ServeHTTP(health, healthReq)
	assert.Equal(t, http.StatusOK, health.Code)

	clock.Advance(time.Minute)
	rec = env.postJSON(t, "/generate", body)
	assert.Equal(t, http.StatusOK, rec.Code)
}
