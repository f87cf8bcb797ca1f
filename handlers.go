package agencia

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/4ftech/agencia/markdown"
	"github.com/4ftech/agencia/views"
)

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func postView(p BlogPost) views.Post {
	return views.Post{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		ReadTime:    p.ReadTime,
		Image:       p.Image,
		Tags:        p.Tags,
	}
}

func postViews(posts []BlogPost) []views.Post {
	out := make([]views.Post, len(posts))
	for i, p := range posts {
		out[i] = postView(p)
	}
	return out
}

// handleHome serves the marketing landing page.
func (a *App) handleHome(c echo.Context) error {
	a.trackVisit(c)
	return Render(c, views.Home(a.site()))
}

// handleBlogIndex serves the blog listing, date-descending, optionally
// filtered by tag.
func (a *App) handleBlogIndex(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	a.trackVisit(c)
	return Render(c, views.BlogIndex(a.site(), postViews(posts), tag, tags))
}

// handleBlogPost serves a single post with its body rendered from
// markdown. An indexed slug with no document is a server fault, not a
// 404.
func (a *App) handleBlogPost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Content.GetWithContent(slug)
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	if err != nil {
		return err
	}
	a.trackVisit(c)
	return Render(c, views.BlogPost(a.site(), postView(post.BlogPost), markdown.Component(post.Content)))
}

func (a *App) handleLogin(c echo.Context) error {
	return Render(c, views.Login(a.site(), c.QueryParam("callbackUrl")))
}

func (a *App) handleAccessDenied(c echo.Context) error {
	return Render(c, views.AccessDenied(a.site()))
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin\nDisallow: /api/admin\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

// trackVisit records a page view when analytics is enabled. Failures
// are logged, never surfaced to the visitor.
func (a *App) trackVisit(c echo.Context) {
	if a.analyticsStore == nil {
		return
	}
	req := c.Request()
	if err := a.analyticsStore.RecordVisit(req.URL.Path, c.RealIP(), req.Referer()); err != nil {
		c.Logger().Errorf("record visit: %v", err)
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
