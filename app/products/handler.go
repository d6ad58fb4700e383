package products

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
	ListView   = "product/list"
	DetailView = "product/detail"
	FormView   = "product/form"

	listPath = "/products"
)

const missingCategory = "The selected category does not exist."

type ProductProvider interface {
	FindPage(ctx context.Context, req models.PageRequest) (models.Page[models.Product], error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, product *models.Product) error
}

// CategoryProvider feeds the category selector and checks references.
type CategoryProvider interface {
	FindAll(ctx context.Context, sort string) ([]models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
}

type ListData struct {
	Page       models.Page[models.Product] `json:"page"`
	Categories []models.Category           `json:"categories"`
	Notice     string                      `json:"notice,omitempty"`
	Alert      string                      `json:"alert,omitempty"`
}

type DetailData struct {
	Product *models.Product `json:"product"`
}

type FormData struct {
	ID         uint              `json:"id,omitempty"`
	Action     string            `json:"action"`
	Form       map[string]string `json:"form"`
	Errors     map[string]string `json:"errors,omitempty"`
	Categories []models.Category `json:"categories"`
}

type ProductHandler struct {
	repo       ProductProvider
	categories CategoryProvider
	flash      web.FlashStore
	view       web.Renderer
}

func NewProductHandler(r ProductProvider, c CategoryProvider, f web.FlashStore, v web.Renderer) *ProductHandler {
	return &ProductHandler{
		repo:       r,
		categories: c,
		flash:      f,
		view:       v,
	}
}

func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := h.flash.Pop(w, r)

	page, err := h.repo.FindPage(ctx, models.PageRequest{
		Number: web.PageParam(r),
		Size:   models.PageSize,
		Sort:   "name",
	})
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	categories, err := h.categories.FindAll(ctx, "name")
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	h.render(w, r, ListView, ListData{
		Page:       page,
		Categories: categories,
		Notice:     f.Notice,
		Alert:      f.Alert,
	})
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.load(r)
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}
	h.render(w, r, DetailView, DetailData{Product: product})
}

func (h *ProductHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.FindAll(r.Context(), "name")
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	f := h.flash.Pop(w, r)
	form := f.Form
	if form == nil {
		form = (&models.Product{}).FormValues()
	}

	h.render(w, r, FormView, FormData{
		Action:     listPath,
		Form:       form,
		Errors:     f.Errors,
		Categories: categories,
	})
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.handleWrite(w, r, 0, listPath+"/new")
}

func (h *ProductHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	product, err := h.load(r)
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	categories, err := h.categories.FindAll(r.Context(), "name")
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	f := h.flash.Pop(w, r)
	data := FormData{
		ID:         product.ID,
		Action:     fmt.Sprintf("%s/%d", listPath, product.ID),
		Form:       product.FormValues(),
		Categories: categories,
	}
	if f.Form != nil {
		data.Form = f.Form
		data.Errors = f.Errors
	}
	h.render(w, r, FormView, data)
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r)
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}
	h.handleWrite(w, r, id, fmt.Sprintf("%s/%d/edit", listPath, id))
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	product, err := h.load(r)
	if err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	ctx := r.Context()
	if err := h.repo.Delete(ctx, product); err != nil {
		web.Fail(w, r, h.view, err)
		return
	}

	logger.InfoContext(ctx, "Product deleted", "product_id", product.ID)
	h.redirect(w, r, listPath, web.Flash{Notice: "Product deleted successfully."})
}

// handleWrite runs the create/update flow. id is zero for creates; for
// updates it replaces whatever identifier the client may have sent.
func (h *ProductHandler) handleWrite(w http.ResponseWriter, r *http.Request, id uint, formPath string) {
	ctx := r.Context()

	errs := models.ValidationErrors{}
	if err := r.ParseForm(); err != nil {
		errs.Add("form", "The submitted form could not be read.")
	}
	submitted := models.FormValues(r.PostForm, models.ProductFields)

	candidate, bindErrs := models.BindProduct(r.PostForm)
	candidate.ID = id
	errs.Merge(bindErrs)
	errs.Merge(models.Validate(candidate))

	if _, invalid := errs["categoryId"]; !invalid {
		_, err := h.categories.FindByID(ctx, candidate.CategoryID)
		switch {
		case errors.Is(err, models.ErrNotFound):
			errs.Add("categoryId", missingCategory)
		case err != nil:
			web.Fail(w, r, h.view, err)
			return
		}
	}

	if errs.HasErrors() {
		h.redirect(w, r, formPath, web.Flash{Form: submitted, Errors: errs})
		return
	}

	saved, err := h.repo.Save(ctx, candidate)
	if err != nil {
		if errors.Is(err, models.ErrConstraintViolation) {
			logger.WarnContext(ctx, "Product rejected by store", "category_id", candidate.CategoryID, "error", err)
			h.redirect(w, r, formPath, web.Flash{Form: submitted, Errors: map[string]string{"categoryId": missingCategory}})
			return
		}
		web.Fail(w, r, h.view, err)
		return
	}

	notice := "Product saved successfully."
	if id != 0 {
		notice = "Product updated successfully."
	}
	logger.InfoContext(ctx, "Product saved", "product_id", saved.ID, "category_id", saved.CategoryID, "created", id == 0)
	h.redirect(w, r, listPath, web.Flash{Notice: notice})
}

func (h *ProductHandler) load(r *http.Request) (*models.Product, error) {
	id, err := web.IDParam(r)
	if err != nil {
		return nil, err
	}
	return h.repo.FindByID(r.Context(), id)
}

func (h *ProductHandler) redirect(w http.ResponseWriter, r *http.Request, location string, f web.Flash) {
	if err := h.flash.Set(w, f); err != nil {
		web.Fail(w, r, h.view, err)
		return
	}
	web.SeeOther(w, r, location)
}

func (h *ProductHandler) render(w http.ResponseWriter, r *http.Request, view string, data any) {
	if err := h.view.Render(w, r, http.StatusOK, view, data); err != nil {
		logger.ErrorContext(r.Context(), "Failed to render view", "view", view, "error", err)
	}
}
