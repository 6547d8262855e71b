package app_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"sueta_backend/internal/app"
	"sueta_backend/internal/config"
	"sueta_backend/internal/models"
	"sueta_backend/internal/storage"
	"sueta_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestServer - приложение целиком поверх in-memory базы
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
	Client *http.Client
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testutil.Config(t)
	db := testutil.OpenDB(t, cfg)

	store, err := storage.NewLocalStorage(storage.Config{BasePath: cfg.Storage.BasePath, BaseURL: cfg.Storage.BaseURL})
	require.NoError(t, err)

	router, err := app.SetupRouter(cfg, app.Deps{DB: db, Storage: store})
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	ts := &TestServer{Server: server, DB: db, Config: cfg}
	ts.Client = ts.NewClient(t)
	return ts
}

// NewClient - отдельный "браузер" со своими cookie; редиректы не выполняются
func (ts *TestServer) NewClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (ts *TestServer) Get(t *testing.T, client *http.Client, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
	require.NoError(t, err)
	return do(t, client, req)
}

func (ts *TestServer) PostForm(t *testing.T, client *http.Client, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, client, req)
}

// Login входит под пользователем и возвращает клиента с cookie сессии
func (ts *TestServer) Login(t *testing.T, username, password string) *http.Client {
	t.Helper()
	client := ts.NewClient(t)
	res, body := ts.PostForm(t, client, "/event/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(t, http.StatusFound, res.StatusCode, body)
	return client
}

func (ts *TestServer) CreateAdmin(t *testing.T) *http.Client {
	t.Helper()
	testutil.CreateUser(t, ts.DB, &models.User{Username: "site_admin", IsAdmin: true}, "admin_password")
	return ts.Login(t, "site_admin", "admin_password")
}

func do(t *testing.T, client *http.Client, req *http.Request) (*http.Response, string) {
	t.Helper()
	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}
