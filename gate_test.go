package agencia

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
)

// newTestApp builds a fully wired App over temporary directories,
// without listening. The /test/signin route stands in for the identity
// provider callback so tests can mint a session cookie.
func newTestApp(t *testing.T) *App {
	t.Helper()
	a := New(SiteConfig{
		ContentDir:    t.TempDir(),
		UploadDir:     filepath.Join(t.TempDir(), "uploads"),
		AdminEmails:   []string{"foo@bar.com"},
		SessionSecret: "test-secret",
	}, WithCustomRoutes(func(app *App) {
		app.Echo.GET("/test/signin", func(c echo.Context) error {
			if err := SetSessionEmail(c, c.QueryParam("email")); err != nil {
				return err
			}
			return c.NoContent(http.StatusOK)
		})
	}))
	if err := a.setup(); err != nil {
		t.Fatalf("failed to set up app: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

// signIn mints a session cookie for the given email.
func signIn(t *testing.T, a *App, email string) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/test/signin?email="+email, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin returned %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("signin set no cookies")
	}
	return cookies
}

func doRequest(a *App, method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(a, http.MethodGet, "/admin", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?callbackUrl=%2Fadmin" {
		t.Errorf("Location = %q, want /login?callbackUrl=%%2Fadmin", loc)
	}
}

func TestGateCallbackCarriesFullPath(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(a, http.MethodGet, "/api/admin/posts", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?callbackUrl=%2Fapi%2Fadmin%2Fposts" {
		t.Errorf("Location = %q", loc)
	}
}

func TestGateRedirectsUnlistedEmail(t *testing.T) {
	a := newTestApp(t)
	cookies := signIn(t, a, "intruder@example.com")

	rec := doRequest(a, http.MethodGet, "/admin", cookies)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/access-denied" {
		t.Errorf("Location = %q, want /access-denied", loc)
	}
}

func TestGateAllowsListedEmailCaseInsensitive(t *testing.T) {
	a := newTestApp(t)
	cookies := signIn(t, a, "Foo@Bar.com")

	rec := doRequest(a, http.MethodGet, "/admin", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Authorized-User"); got != "Foo@Bar.com" {
		t.Errorf("X-Authorized-User = %q", got)
	}
}

func TestGateIgnoresUnprotectedPaths(t *testing.T) {
	a := newTestApp(t)

	for _, target := range []string{"/", "/blog", "/login", "/access-denied", "/administrator-notes"} {
		rec := doRequest(a, http.MethodGet, target, nil)
		if rec.Code == http.StatusSeeOther {
			t.Errorf("GET %s was gated: redirected to %q", target, rec.Header().Get("Location"))
		}
	}
}

func TestIsProtectedPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/admin", true},
		{"/admin/posts", true},
		{"/api/admin", true},
		{"/api/admin/uploads", true},
		{"/administrator", false},
		{"/api/administrate", false},
		{"/", false},
		{"/blog", false},
	}
	for _, tt := range tests {
		if got := isProtectedPath(tt.path); got != tt.want {
			t.Errorf("isProtectedPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
