package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

const defaultRequestTimeout = 30 * time.Second

// Init builds the router. Middleware order: client IP (only when proxy
// headers are trusted), panic recovery, trace id, access log, request
// timeout.
func (h *Handler) Init() http.Handler {
	router := chi.NewRouter()
	if h.cfg.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(middleware.Timeout(h.requestTimeout()))

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	router.Route("/api", func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/version", h.getServerVersion)
		r.Get("/health", h.health)
		r.Post("/auth/login", h.login)
		r.Post("/contact", h.submitContact)

		mountContent(r, h, "/projects", h.services.Projects, contentRoutes{sortable: true})
		mountContent(r, h, "/skills", h.services.Skills, contentRoutes{sortable: true})
		mountContent(r, h, "/experience", h.services.Experience, contentRoutes{sortable: true})
		mountContent(r, h, "/education", h.services.Education, contentRoutes{sortable: true})
		mountContent(r, h, "/certifications", h.services.Certifications, contentRoutes{})
		mountContent(r, h, "/testimonials", h.services.Testimonials, contentRoutes{})
		mountContent(r, h, "/blog-posts", h.services.BlogPosts, contentRoutes{bySlug: true})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/uploads/{bucket}", h.uploadFile)

			r.Get("/contact", h.listContactMessages)
			r.Get("/contact/unread-count", h.unreadCount)
			r.Get("/contact/{id}", h.getContactMessage)
			r.Put("/contact/{id}/status", h.updateContactStatus)
			r.Delete("/contact/{id}", h.deleteContactMessage)

			r.Get("/blocked-ips", h.listBlockedIPs)
			r.Post("/blocked-ips", h.blockIP)
			r.Delete("/blocked-ips/{id}", h.unblockIP)
			r.Delete("/blocked-ips/by-ip/{ip}", h.unblockByIP)
		})
	})

	if h.files != nil {
		router.Handle("/files/*", http.StripPrefix("/files", h.files))
	}

	return h.withCORS(router)
}

func (h *Handler) requestTimeout() time.Duration {
	if h.cfg.RequestTimeout > 0 {
		return h.cfg.RequestTimeout
	}
	return defaultRequestTimeout
}

func (h *Handler) withCORS(next http.Handler) http.Handler {
	origins := h.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders: []string{traceIDHeader, "Retry-After"},
		MaxAge:         300,
	}).Handler(next)
}

// contentRoutes enables the optional routes of a collection.
type contentRoutes struct {
	sortable bool
	bySlug   bool
}

// mountContent registers the public reads and the admin writes of one
// content collection under path.
func mountContent[T any](r chi.Router, h *Handler, path string, svc service.ContentService[T], opts contentRoutes) {
	ch := &contentHandler[T]{svc: svc, name: path[1:]}

	r.Route(path, func(r chi.Router) {
		r.Get("/", ch.list)
		r.Get("/{id}", ch.get)
		if opts.bySlug {
			r.Get("/slug/{slug}", ch.getBySlug)
		}

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/", ch.create)
			r.Put("/{id}", ch.update)
			r.Delete("/{id}", ch.delete)
			if opts.sortable {
				r.Put("/order", ch.reorder)
			}
			r.Post("/{id}/files/{slot}", ch.attach)
			r.Delete("/{id}/files/{slot}", ch.detach)
		})
	})
}
