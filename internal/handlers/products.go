package handlers

import (
	"net/http"
	"strconv"

	"agrocore/models"

	"github.com/go-chi/chi/v5"
)

// CreateProductHandler handles POST /api/products.
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if !h.decodeBody(w, r, &product) {
		return
	}

	if err := h.Store.CreateProduct(r.Context(), &product); err != nil {
		writeStorageError(w, err, "user not found")
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// GetProductsHandler handles GET /api/products.
func (h *Handler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	products, err := h.Store.GetProducts(r.Context(), params.Limit, params.Offset)
	if err != nil {
		writeStorageError(w, err, "products not found")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// CreateProductCommentHandler handles POST /api/products/{productId}/comments.
// Top-level comments notify the product owner; replies notify the parent
// comment's author.
func (h *Handler) CreateProductCommentHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	var comment models.ProductComment
	if !h.decodeBody(w, r, &comment) {
		return
	}
	comment.ProductID = productID

	product, err := h.Store.GetProduct(r.Context(), productID)
	if err != nil {
		writeStorageError(w, err, "product not found")
		return
	}

	if err := h.Store.CreateProductComment(r.Context(), &comment); err != nil {
		writeStorageError(w, err, "product not found")
		return
	}

	if comment.ParentID != nil {
		parent, err := h.Store.GetProductComment(r.Context(), *comment.ParentID)
		if err == nil {
			h.notify(r.Context(), parent.UserID, comment.UserID, models.NotifyProductReply, productID)
		}
	} else {
		h.notify(r.Context(), product.UserID, comment.UserID, models.NotifyProductComment, productID)
	}

	writeJSON(w, http.StatusCreated, comment)
}

// GetProductCommentsHandler handles GET /api/products/{productId}/comments.
func (h *Handler) GetProductCommentsHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	comments, err := h.Store.GetProductComments(r.Context(), productID)
	if err != nil {
		writeStorageError(w, err, "product not found")
		return
	}

	writeJSON(w, http.StatusOK, comments)
}
