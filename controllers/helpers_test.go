package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotel-admin/middleware"
	"hotel-admin/services"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	api    *gin.RouterGroup
	jwt    *services.JWTService
	tokens *services.MemoryTokenStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := services.NewJWTService("test-secret", time.Hour)
	tokens := services.NewMemoryTokenStore()
	r := gin.New()
	return &testServer{
		t:      t,
		router: r,
		api:    r.Group("/", middleware.Authenticate(jwtSvc, tokens, zap.NewNop())),
		jwt:    jwtSvc,
		tokens: tokens,
	}
}

func (s *testServer) tokenFor(userID uint) string {
	s.t.Helper()
	token, _, err := s.jwt.GenerateToken(userID)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, token)
}

type upload struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func (s *testServer) doMultipart(method, path, token string, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(s.t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(s.t, err)
		_, err = part.Write(f.content)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(req, token)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	assert.Equal(t, code, w.Code, w.Body.String())
	assert.JSONEq(t, `{"error":`+string(mustJSON(t, message))+`}`, w.Body.String())
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestOptionalID(t *testing.T) {
	cases := map[string]*uint{
		`null`: nil,
		`""`:   nil,
		`7`:    uintPtr(7),
		`"12"`: uintPtr(12),
	}
	for raw, want := range cases {
		var got optionalID
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		assert.Equal(t, want, got.Value, raw)
	}

	var bad optionalID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`-1`), &bad))
}

func TestFlexBool(t *testing.T) {
	for raw, want := range map[string]bool{`true`: true, `false`: false, `1`: true, `0`: false, `"1"`: true, `null`: false} {
		var got flexBool
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		assert.Equal(t, want, bool(got), raw)
	}
	var bad flexBool
	assert.Error(t, json.Unmarshal([]byte(`"yes please"`), &bad))
}

func uintPtr(v uint) *uint { return &v }
