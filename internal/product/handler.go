package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sammk21/ecommerce-admin/internal/auth"
	"github.com/Sammk21/ecommerce-admin/internal/catalog"
	"github.com/Sammk21/ecommerce-admin/internal/response"
)

// Handler holds HTTP handlers for product endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new product Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List godoc
//
//	@Summary		List products
//	@Description	One page of products with sorting. Unknown sort fields fall back to sku ascending. Always returns a page, empty when the catalog is unreachable.
//	@Tags			products
//	@Produce		json
//	@Param			page	query		int		false	"Page number (default 1)"
//	@Param			limit	query		int		false	"Page size (default 10, max 100)"
//	@Param			sort	query		string	false	"Sort field: sku, name, price, createdAt, updatedAt"
//	@Param			order	query		string	false	"asc or desc"
//	@Success		200		{object}	response.Envelope{data=catalog.ListResult}
//	@Router			/products [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.CredentialFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	params := catalog.ListParams{
		Page:  page,
		Limit: limit,
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	}

	response.OK(w, h.svc.List(r.Context(), cred, params))
}

// Get godoc
//
//	@Summary		Get product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	response.Envelope{data=catalog.Product}
//	@Failure		404	{object}	response.Envelope
//	@Failure		502	{object}	response.Envelope
//	@Router			/products/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.CredentialFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	p, err := h.svc.Get(r.Context(), cred, chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		response.NotFound(w, "product not found")
		return
	}
	if err != nil {
		response.BadGateway(w, "failed to fetch product")
		return
	}

	response.OK(w, p)
}

// Create godoc
//
//	@Summary		Create product
//	@Description	Multipart form with fields name, price, and repeated images file parts. New images are uploaded to the blob store before the record is submitted; on catalog failure the uploads are compensated with best-effort deletion.
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name	formData	string	true	"Product name (3-255 characters)"
//	@Param			price	formData	string	true	"Positive decimal price"
//	@Param			images	formData	file	false	"Product images"
//	@Success		201		{object}	response.Envelope
//	@Failure		400		{object}	response.Envelope
//	@Failure		422		{object}	response.Envelope
//	@Failure		502		{object}	response.Envelope
//	@Router			/products [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.CredentialFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	session, err := ParseForm(r)
	if err != nil {
		response.BadRequest(w, "invalid form submission")
		return
	}

	if err := h.svc.Create(r.Context(), cred, session); err != nil {
		writeSubmitError(w, err, "failed to create product")
		return
	}

	response.Created(w, map[string]bool{"created": true})
}

// Update godoc
//
//	@Summary		Update product
//	@Description	Multipart form where the repeated images field mixes kept-URL string parts and new file parts. Images dropped from the form are deleted from the blob store; new files are uploaded; the final list is kept-then-new.
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Product ID"
//	@Param			name	formData	string	true	"Product name (3-255 characters)"
//	@Param			price	formData	string	true	"Positive decimal price"
//	@Param			images	formData	file	false	"Kept image URLs and new files"
//	@Success		200		{object}	response.Envelope
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		422		{object}	response.Envelope
//	@Failure		502		{object}	response.Envelope
//	@Router			/products/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.CredentialFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	session, err := ParseForm(r)
	if err != nil {
		response.BadRequest(w, "invalid form submission")
		return
	}

	if err := h.svc.Update(r.Context(), cred, chi.URLParam(r, "id"), session); err != nil {
		writeSubmitError(w, err, "failed to update product")
		return
	}

	response.OK(w, map[string]bool{"updated": true})
}

// Delete godoc
//
//	@Summary		Delete product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	response.Envelope
//	@Failure		502	{object}	response.Envelope
//	@Router			/products/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	cred, ok := auth.CredentialFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.svc.Delete(r.Context(), cred, chi.URLParam(r, "id")); err != nil {
		response.BadGateway(w, "failed to delete product")
		return
	}

	response.OK(w, map[string]bool{"deleted": true})
}

// writeSubmitError maps pipeline failures onto the response taxonomy:
// field errors inline, missing product as 404, everything else as an
// upstream failure.
func writeSubmitError(w http.ResponseWriter, err error, fallback string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		fields := make([]response.FieldError, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = response.FieldError{Field: f.Field, Message: f.Message}
		}
		response.Invalid(w, fields)
		return
	}
	if errors.Is(err, catalog.ErrNotFound) {
		response.NotFound(w, "product not found")
		return
	}
	response.BadGateway(w, fallback)
}
