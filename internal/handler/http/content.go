// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/service"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/go-chi/chi/v5"
)

const maxListLimit = 100

// contentHandler serves one content collection. name is the path segment
// of the collection and prefixes the log func field.
type contentHandler[T any] struct {
	svc  service.ContentService[T]
	name string
}

func (c *contentHandler[T]) fn(op string) string {
	return "handler." + c.name + "." + op
}

func (c *contentHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		logger.FromRequest(r).Info().Err(err).Str("func", c.fn("list")).Send()
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := c.svc.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, c.fn("list"))
		return
	}

	if records == nil {
		records = []T{}
	}
	utils.WriteJSON(w, records, http.StatusOK)
}

func (c *contentHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	rec, err := c.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, c.fn("get"))
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}

func (c *contentHandler[T]) getBySlug(w http.ResponseWriter, r *http.Request) {
	records, err := c.svc.List(r.Context(), models.ListOptions{Slug: chi.URLParam(r, "slug"), Limit: 1})
	if err != nil {
		writeServiceError(w, r, err, c.fn("getBySlug"))
		return
	}
	if len(records) == 0 {
		writeServiceError(w, r, store.ErrNotFound, c.fn("getBySlug"))
		return
	}

	utils.WriteJSON(w, records[0], http.StatusOK)
}

func (c *contentHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		logger.FromRequest(r).Info().Err(err).Str("func", c.fn("create")).Msg(msgInvalidJSON)
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := c.svc.Create(r.Context(), rec)
	if err != nil {
		writeServiceError(w, r, err, c.fn("create"))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (c *contentHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		logger.FromRequest(r).Info().Err(err).Str("func", c.fn("update")).Msg(msgInvalidJSON)
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := c.svc.Update(r.Context(), chi.URLParam(r, "id"), rec)
	if err != nil {
		writeServiceError(w, r, err, c.fn("update"))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (c *contentHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, c.fn("delete"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *contentHandler[T]) reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Info().Err(err).Str("func", c.fn("reorder")).Msg(msgInvalidJSON)
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := c.svc.Reorder(r.Context(), req.IDs); err != nil {
		writeServiceError(w, r, err, c.fn("reorder"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// attach stores the multipart "file" field in the record's slot.
func (c *contentHandler[T]) attach(w http.ResponseWriter, r *http.Request) {
	file, cleanup, ok := readUpload(w, r, "", c.fn("attach"))
	if !ok {
		return
	}
	defer cleanup()

	rec, err := c.svc.Attach(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "slot"), file)
	if err != nil {
		writeServiceError(w, r, err, c.fn("attach"))
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}

func (c *contentHandler[T]) detach(w http.ResponseWriter, r *http.Request) {
	rec, err := c.svc.Detach(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "slot"))
	if err != nil {
		writeServiceError(w, r, err, c.fn("detach"))
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}

type queryError struct {
	param string
}

func (e queryError) Error() string {
	return "Invalid query parameter: " + e.param
}

// parseListOptions reads featured, published, status, category, limit and
// offset from the query string.
func parseListOptions(r *http.Request) (models.ListOptions, error) {
	q := r.URL.Query()
	opts := models.ListOptions{
		Status:   q.Get("status"),
		Category: q.Get("category"),
	}

	for param, dst := range map[string]**bool{"featured": &opts.Featured, "published": &opts.Published} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return models.ListOptions{}, queryError{param}
		}
		*dst = &b
	}

	for param, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return models.ListOptions{}, queryError{param}
		}
		*dst = n
	}

	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}

	return opts, nil
}
