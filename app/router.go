package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	router.NotFound(app.notFoundErrorResponse)
	router.MethodNotAllowed(app.methodNotAllowedErrorResponse)

	router.Get("/healthcheck", app.healthCheckHandler)

	// posts
	router.Get("/posts", app.getPostsHandler)
	router.Post("/posts", app.createPostHandler)
	router.Get("/posts/latest", app.getLatestPostsHandler)
	router.Get("/posts/slug/{slug}", app.getPostBySlugHandler)
	router.Get("/posts/{id}", app.getPostHandler)
	router.Put("/posts/{id}", app.updatePostHandler)
	router.Delete("/posts/{id}", app.deletePostHandler)

	// media
	router.Post("/upload", app.uploadImageHandler)

	return app.recoverPanic(app.logRequest(app.enableCORS(router)))
}
