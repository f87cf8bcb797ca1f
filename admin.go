package agencia

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/4ftech/agencia/views"
)

// handleAdminDashboard serves the admin UI. The access gate already
// guards this path; the session check here is defense-in-depth, server
// side, in case the route is ever remounted.
func (a *App) handleAdminDashboard(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/access-denied")
	}
	posts, err := a.Content.ListAll()
	if err != nil {
		return err
	}
	SortPostsByDate(posts)
	email, _ := c.Get(ctxUserEmail).(string)
	return Render(c, views.AdminDashboard(a.site(), postViews(posts), email))
}

// --- Posts API ---

func (a *App) handleListPosts(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	posts, err := a.Content.ListAll()
	if err != nil {
		return a.apiError(c, err)
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

func (a *App) handleCreatePost(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	var input PostInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	input.Tags = FilterEmpty(input.Tags)
	post, err := a.Content.Create(input)
	if err != nil {
		return a.apiError(c, err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"success": true, "post": post})
}

func (a *App) handleGetPost(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	post, err := a.Content.GetWithContent(c.Param("slug"))
	if err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

func (a *App) handleUpdatePost(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	var input PostInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	input.Tags = FilterEmpty(input.Tags)
	post, err := a.Content.Update(c.Param("slug"), input)
	if err != nil {
		return a.apiError(c, err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"success": true, "post": post})
}

func (a *App) handleDeletePost(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	if err := a.Content.Delete(c.Param("slug")); err != nil {
		return a.apiError(c, err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// --- Uploads API ---

func (a *App) handleListUploads(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	images, err := a.Uploads.List()
	if err != nil {
		return a.apiError(c, err)
	}
	if images == nil {
		images = []UploadedImage{}
	}
	return c.JSON(http.StatusOK, echo.Map{"images": images})
}

func (a *App) handleUploadImage(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	if !a.uploadLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many uploads, try again later"})
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no image provided"})
	}
	src, err := file.Open()
	if err != nil {
		return a.apiError(c, err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return a.apiError(c, err)
	}

	img, err := a.Uploads.Save(data, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"imageUrl": img.URL,
		"fileName": img.Name,
		"fileSize": img.Size,
	})
}

func (a *App) handleDeleteUpload(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	name := c.QueryParam("image")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image name not provided"})
	}
	if err := a.Uploads.Delete(name); err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "image deleted"})
}

// --- Analytics API ---

func (a *App) handleAnalyticsSummary(c echo.Context) error {
	if !a.sessionIsAdmin(c) {
		return apiForbidden(c)
	}
	if a.analyticsStore == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "analytics disabled"})
	}
	since := time.Now().AddDate(0, 0, -30)
	total, err := a.analyticsStore.TotalVisits(since)
	if err != nil {
		return a.apiError(c, err)
	}
	unique, err := a.analyticsStore.UniqueVisitors(since)
	if err != nil {
		return a.apiError(c, err)
	}
	paths, err := a.analyticsStore.CountsByPath(since)
	if err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":  total,
		"unique": unique,
		"paths":  paths,
	})
}

// apiError maps domain errors onto the API's error responses.
// Consistency violations and storage faults fall through to 500.
func (a *App) apiError(c echo.Context, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, ErrSlugExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "a post with this slug already exists"})
	default:
		c.Logger().Errorf("admin api error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

func apiForbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
}
