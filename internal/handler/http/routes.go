// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Public path prefix of stored media.
const publicMediaPrefix = "/storage/v1/object/public/uploads"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(methodNotAllowed)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withTimeout, withGZip)

		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		r.Get(publicMediaPrefix+"/*", h.serveMedia)
	})

	// REST routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.withTimeout, withMutationID, withGZip)

		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.Post("/", h.savePost)
			r.Get("/{id}", h.getPost)
			r.Delete("/{id}", h.deletePost)
			r.Post("/{id}/comments", h.createComment)
			r.Put("/{id}/like", h.likePost)
			r.Delete("/{id}/like", h.unlikePost)
		})

		r.Delete("/api/comments/{id}", h.deleteComment)

		r.Route("/api/users/{id}", func(r chi.Router) {
			r.Get("/", h.getUser)
			r.Get("/follow", h.followStatus)
			r.Put("/follow", h.follow)
			r.Delete("/follow", h.unfollow)
			r.Get("/follows", h.followCounts)
		})

		r.Get("/api/notifications", h.listNotifications)
		r.Post("/api/notifications/read", h.markNotificationsRead)

		r.Post("/api/storage/{folder}", h.uploadMedia)
	})

	// push channel; long-lived, so neither timeout nor compression applies
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/realtime/v1/websocket", h.serveRealtime)
	})

	return router
}
