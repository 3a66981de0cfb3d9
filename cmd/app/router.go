package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/folio/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	writer := func(h http.HandlerFunc) http.HandlerFunc {
		return app.requirePermission(h, userservice.PermissionWriteBlog)
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return app.requirePermission(h, userservice.PermissionAdmin)
	}

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// user service
	router.HandlerFunc(http.MethodPost, "/api/users/register", app.formRateLimit(app.registerUserHandler))
	router.HandlerFunc(http.MethodPut, "/api/users/activate", app.activateUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/users/login", app.formRateLimit(app.loginUserHandler))
	router.HandlerFunc(http.MethodPost, "/api/users/refresh", app.formRateLimit(app.refreshTokenHandler))
	router.HandlerFunc(http.MethodPost, "/api/users/logout", app.requireAuthUser(app.logoutUserHandler))
	router.HandlerFunc(http.MethodGet, "/api/users/me", app.requireAuthUser(app.currentUserHandler))

	// public blog
	router.HandlerFunc(http.MethodGet, "/api/blog", app.listBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/api/blog/:slug", app.showBlogHandler)
	router.HandlerFunc(http.MethodGet, "/api/blog/:slug/related", app.relatedBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/api/blog/:slug/comments", app.listCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blog/:slug/comments", app.formRateLimit(app.createCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/api/comments/:id", app.requireActivatedUser(app.deleteCommentHandler))
	router.HandlerFunc(http.MethodGet, "/api/tags", app.listTagsHandler)
	router.HandlerFunc(http.MethodGet, "/api/search", app.searchHandler)
	router.HandlerFunc(http.MethodGet, "/rss.xml", app.rssHandler)
	router.HandlerFunc(http.MethodGet, "/sitemap.xml", app.sitemapHandler)

	// bytes
	router.HandlerFunc(http.MethodGet, "/api/bytes", app.listBytesHandler)
	router.HandlerFunc(http.MethodGet, "/api/bytes/:id", app.showByteHandler)

	// forms
	router.HandlerFunc(http.MethodPost, "/api/subscribe", app.formRateLimit(app.subscribeHandler))
	router.HandlerFunc(http.MethodPost, "/api/unsubscribe", app.formRateLimit(app.unsubscribeHandler))
	router.HandlerFunc(http.MethodPost, "/api/contact", app.formRateLimit(app.contactHandler))

	// blog editor
	router.HandlerFunc(http.MethodGet, "/api/admin/blogs", writer(app.adminListBlogsHandler))
	router.HandlerFunc(http.MethodPost, "/api/admin/blogs", writer(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/admin/blogs/:id", writer(app.adminShowBlogHandler))
	router.HandlerFunc(http.MethodPut, "/api/admin/blogs/:id", writer(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/blogs/:id", writer(app.deleteBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/admin/blogs/:id/versions", writer(app.listBlogVersionsHandler))
	router.HandlerFunc(http.MethodPost, "/api/admin/blogs/:id/versions/:version/restore", writer(app.restoreBlogVersionHandler))
	router.HandlerFunc(http.MethodPost, "/api/admin/convert", writer(app.convertHandler))
	router.HandlerFunc(http.MethodPost, "/api/admin/generate", admin(app.generateHandler))

	// site administration
	router.HandlerFunc(http.MethodPost, "/api/admin/bytes", admin(app.createByteHandler))
	router.HandlerFunc(http.MethodPut, "/api/admin/bytes/:id", admin(app.updateByteHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/bytes/:id", admin(app.deleteByteHandler))
	router.HandlerFunc(http.MethodGet, "/api/admin/contacts", admin(app.listContactsHandler))
	router.HandlerFunc(http.MethodPut, "/api/admin/contacts/:id", admin(app.updateContactHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/contacts/:id", admin(app.deleteContactHandler))
	router.HandlerFunc(http.MethodGet, "/api/admin/subscribers", admin(app.listSubscribersHandler))

	// linkedin content manager
	router.HandlerFunc(http.MethodGet, "/api/linkedin/content", admin(app.listLinkedInContentHandler))
	router.HandlerFunc(http.MethodPost, "/api/linkedin/content", admin(app.createLinkedInContentHandler))
	router.HandlerFunc(http.MethodGet, "/api/linkedin/content/:id", admin(app.showLinkedInContentHandler))
	router.HandlerFunc(http.MethodPut, "/api/linkedin/content/:id", admin(app.updateLinkedInContentHandler))
	router.HandlerFunc(http.MethodDelete, "/api/linkedin/content/:id", admin(app.deleteLinkedInContentHandler))
	router.HandlerFunc(http.MethodPut, "/api/linkedin/content/:id/slides", admin(app.reorderSlidesHandler))
	router.HandlerFunc(http.MethodPost, "/api/linkedin/carousels", admin(app.generateCarouselHandler))

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(app.authenticate(router)))))
}
