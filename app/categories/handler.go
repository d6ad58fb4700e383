package categories

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shoppingsystem/catalog/app/web"
	"github.com/shoppingsystem/catalog/models"
	"github.com/shoppingsystem/catalog/pkg/logger"
)

const (
	ListView = "category/list"
	FormView = "category/form"

	listPath = "/categories"
)

const duplicateName = "A category with this name already exists."

type CategoryProvider interface {
	FindPage(ctx context.Context, req models.PageRequest) (models.Page[models.Category], error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Save(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, category *models.Category) error
}

// ProductCounter reports how many products a category delete takes with it.
type ProductCounter interface {
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type ListData struct {
	Page   models.Page[models.Category] `json:"page"`
	Notice string                       `json:"notice,omitempty"`
	Alert  string                       `json:"alert,omitempty"`
}

type FormData struct {
	ID     uint              `json:"id,omitempty"`
	Action string            `json:"action"`
	Form   map[string]string `json:"form"`
	Errors map[string]string `json:"errors,omitempty"`
}

type CategoryHandler struct {
	repo     CategoryProvider
	products ProductCounter
	flash    web.FlashStore
	view     web.Renderer
}

func NewCategoryHandler(r CategoryProvider, p ProductCounter, f web.FlashStore, v web.Renderer) *CategoryHandler {
	return &CategoryHandler{
		repo:     r,
		products: p,
		flash:    f,
		view:     v,
	}
}

func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f := h.flash.Pop(w, r)

	page, err := h.repo.FindPage(r.Context(), models.PageRequest{
		Number: web.PageParam(r),
		Size:   models.PageSize,
		Sort:   "name",
	})
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	h.render(w, r, ListView, ListData{Page: page, Notice: f.Notice, Alert: f.Alert})
}

func (h *CategoryHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	f := h.flash.Pop(w, r)

	form := f.Form
	if form == nil {
		form = (&models.Category{}).FormValues()
	}
	h.render(w, r, FormView, FormData{Action: listPath, Form: form, Errors: f.Errors})
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.handleWrite(w, r, 0, listPath+"/new")
}

func (h *CategoryHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	category, err := h.load(r)
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	f := h.flash.Pop(w, r)
	data := FormData{
		ID:     category.ID,
		Action: fmt.Sprintf("%s/%d", listPath, category.ID),
		Form:   category.FormValues(),
	}
	if f.Form != nil {
		data.Form = f.Form
		data.Errors = f.Errors
	}
	h.render(w, r, FormView, data)
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r)
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}
	h.handleWrite(w, r, id, fmt.Sprintf("%s/%d/edit", listPath, id))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	category, err := h.load(r)
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	ctx := r.Context()
	removed, err := h.products.CountByCategory(ctx, category.ID)
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	if err := h.repo.Delete(ctx, category); err != nil {
		if errors.Is(err, models.ErrConstraintViolation) {
			logger.WarnContext(ctx, "Category still referenced", "category_id", category.ID, "error", err)
			h.redirect(w, r, listPath, web.Flash{Alert: "The category could not be deleted because products still reference it."})
			return
		}
		web.Fail(w, r, h.view, err)
		return
	}

	logger.InfoContext(ctx, "Category deleted", "category_id", category.ID, "products_removed", removed)

	notice := "Category deleted successfully."
	if removed > 0 {
		notice = fmt.Sprintf("Category deleted successfully, together with %d product(s).", removed)
	}
	h.redirect(w, r, listPath, web.Flash{Notice: notice})
}

// handleWrite runs the create/update flow. id is zero for creates; for
// updates it replaces whatever identifier the client may have sent.
func (h *CategoryHandler) handleWrite(w http.ResponseWriter, r *http.Request, id uint, formPath string) {
	ctx := r.Context()

	errs := models.ValidationErrors{}
	if err := r.ParseForm(); err != nil {
		errs.Add("form", "The submitted form could not be read.")
	}
	submitted := models.FormValues(r.PostForm, models.CategoryFields)

	candidate, bindErrs := models.BindCategory(r.PostForm)
	candidate.ID = id
	errs.Merge(bindErrs)
	errs.Merge(models.Validate(candidate))

	if _, invalid := errs["name"]; !invalid {
		taken, err := h.nameTaken(ctx, candidate)
		if err != nil {
			web.Fail(w, r, h.view, err)
			return
		}
		if taken {
			errs.Add("name", duplicateName)
		}
	}

	if errs.HasErrors() {
		h.redirect(w, r, formPath, web.Flash{Form: submitted, Errors: errs})
		return
	}

	saved, err := h.repo.Save(ctx, candidate)
	if err != nil {
		if errors.Is(err, models.ErrConstraintViolation) {
			logger.WarnContext(ctx, "Category rejected by store", "name", candidate.Name, "error", err)
			h.redirect(w, r, formPath, web.Flash{Form: submitted, Errors: map[string]string{"name": duplicateName}})
			return
		}
		web.Fail(w, r, h.view, err)
		return
	}

	notice := "Category saved successfully."
	if id != 0 {
		notice = "Category updated successfully."
	}
	logger.InfoContext(ctx, "Category saved", "category_id", saved.ID, "name", saved.Name, "created", id == 0)
	h.redirect(w, r, listPath, web.Flash{Notice: notice})
}

func (h *CategoryHandler) nameTaken(ctx context.Context, c *models.Category) (bool, error) {
	existing, err := h.repo.FindByName(ctx, c.Name)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID != c.ID, nil
}

func (h *CategoryHandler) load(r *http.Request) (*models.Category, error) {
	id, err := web.IDParam(r)
	if err != nil {
		return nil, err
	}
	return h.repo.FindByID(r.Context(), id)
}

func (h *CategoryHandler) redirect(w http.ResponseWriter, r *http.Request, location string, f web.Flash) {
	if err := h.flash.Set(w, f); err != nil {
		web.Fail(w, r, h.view, err)
		return
	}
	web.SeeOther(w, r, location)
}

func (h *CategoryHandler) render(w http.ResponseWriter, r *http.Request, view string, data any) {
	if err := h.view.Render(w, r, http.StatusOK, view, data); err != nil {
		logger.ErrorContext(r.Context(), "Failed to render view", "view", view, "error", err)
	}
}
