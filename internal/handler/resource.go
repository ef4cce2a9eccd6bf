package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fsanano/go-orders/internal/errs"
	"fsanano/go-orders/internal/validation"
)

// crudService is what a resource needs from its service. V is the rendered
// row and I the request body.
type crudService[V, I any] interface {
	List(ctx context.Context) ([]V, error)
	Get(ctx context.Context, id int64) (V, error)
	Create(ctx context.Context, in *I) (int64, error)
	Update(ctx context.Context, id int64, in *I) error
	Delete(ctx context.Context, id int64) error
}

// messages are the confirmations returned by create, update and delete.
type messages struct {
	created string
	updated string
	deleted string
}

type mutationResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type resource[V, I any, PI interface {
	*I
	validation.Validatable
}] struct {
	svc crudService[V, I]
	msg messages
}

func (h *resource[V, I, PI]) routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id:[0-9]+}", h.get)
	r.Put("/{id:[0-9]+}", h.update)
	r.Delete("/{id:[0-9]+}", h.delete)
}

func (h *resource[V, I, PI]) list(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *resource[V, I, PI]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	row, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *resource[V, I, PI]) create(w http.ResponseWriter, r *http.Request) {
	in := PI(new(I))
	if err := validation.BindAndValidate(w, r, in); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), (*I)(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mutationResponse{Message: h.msg.created, ID: id})
}

func (h *resource[V, I, PI]) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	in := PI(new(I))
	if err := validation.BindAndValidate(w, r, in); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), id, (*I)(in)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Message: h.msg.updated, ID: id})
}

func (h *resource[V, I, PI]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Message: h.msg.deleted, ID: id})
}

// pathID reads the {id} parameter. The route pattern guarantees digits, so
// the only failure is overflow, which cannot name an existing row.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewNotFoundError("Resource " + raw + " not found")
	}
	return id, nil
}
