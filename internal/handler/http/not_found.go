// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/go-chi/chi/v5"
)

// allowProbeMethods are tried against the router to build the Allow header.
var allowProbeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// notFound replaces chi's plain-text 404 so every API reply is JSON.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, msgNotFound, http.StatusNotFound)
}

// methodNotAllowed replaces chi's plain-text 405. A custom handler replaces
// chi's own, which is what sets Allow, so the header is rebuilt here.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if allowed := allowedMethods(r); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	utils.WriteError(w, msgMethodNotAllowed, http.StatusMethodNotAllowed)
}

func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}

	var allowed []string
	for _, m := range allowProbeMethods {
		if rctx.Routes.Match(chi.NewRouteContext(), m, r.URL.Path) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}
