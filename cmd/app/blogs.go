package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/folio/internal/blogservice"
)

func (app *application) blogErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, blogservice.ErrDuplicateSlug):
		app.conflictErrorResponse(w, r, "duplicate slug", map[string]string{"slug": "a blog with this slug already exists"})
	case errors.Is(err, blogservice.ErrUserForeignKey):
		app.invalidAuthenticationTokenResponse(w, r)
	default:
		app.serviceErrorResponse(w, r, err)
	}
}

// editor identifies the authenticated caller to the blog service.
func (app *application) editor(r *http.Request) blogservice.Editor {
	user := app.getUserContext(r)
	return blogservice.Editor{UserID: user.ID, Admin: user.IsAdmin()}
}

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.readPagination(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, md, err := app.blogService.GetBlogs(r.Context(), app.readString(r, "tag", ""), p)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", blogs).withMetadata(md))
}

func (app *application) showBlogHandler(w http.ResponseWriter, r *http.Request) {
	blog, err := app.blogService.GetPublishedBySlug(r.Context(), app.readParam(r, "slug"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", blog))
}

func (app *application) relatedBlogsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readInt(r, "limit", blogservice.DefaultRelatedLimit)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, err := app.blogService.GetRelatedBlogs(r.Context(), app.readParam(r, "slug"), limit)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", blogs))
}

func (app *application) listTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := app.blogService.GetTags(r.Context())
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", tags))
}

// searchHandler searches published posts, or bytes when type=bytes.
func (app *application) searchHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.readPagination(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	q := app.readString(r, "q", "")

	switch app.readString(r, "type", "blogs") {
	case "blogs":
		blogs, md, err := app.blogService.SearchBlogs(r.Context(), q, p)
		if err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
		app.writeData(w, r, http.StatusOK, success("", blogs).withMetadata(md))
	case "bytes":
		bytes, md, err := app.byteService.SearchBytes(r.Context(), q, p)
		if err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
		app.writeData(w, r, http.StatusOK, success("", bytes).withMetadata(md))
	default:
		app.failedValidationErrorResponse(w, r, map[string]string{"type": "must be blogs or bytes"})
	}
}

func (app *application) adminListBlogsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.readPagination(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, md, err := app.blogService.GetAllBlogs(r.Context(), app.editor(r), p)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", blogs).withMetadata(md))
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.CreateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.UserID = app.getUserContext(r).ID

	blog, err := app.blogService.CreateBlog(r.Context(), &input)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusCreated, success("blog created", blog))
}

func (app *application) adminShowBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id, app.editor(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", blog))
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input blogservice.UpdateBlogRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.UpdateBlog(r.Context(), id, app.editor(r), &input)
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("blog updated", blog))
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), id, app.editor(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("blog deleted", nil))
}

func (app *application) listBlogVersionsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	versions, err := app.blogService.GetVersions(r.Context(), id, app.editor(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("", versions))
}

func (app *application) restoreBlogVersionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	version, err := app.readIDParam(r, "version")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	blog, err := app.blogService.RestoreVersion(r.Context(), id, version, app.editor(r))
	if err != nil {
		app.blogErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, success("version restored", blog))
}

type convertRequest struct {
	HTML string `json:"html"`
}

func (app *application) convertHandler(w http.ResponseWriter, r *http.Request) {
	var input convertRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.HTML == "" {
		app.failedValidationErrorResponse(w, r, map[string]string{"html": "must be provided"})
		return
	}

	app.writeData(w, r, http.StatusOK, success("", map[string]string{
		"markdown": blogservice.HTMLToMarkdown(input.HTML),
	}))
}
