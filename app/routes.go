package app

import (
	"net/http"

	"github.com/shoppingsystem/catalog/app/categories"
	"github.com/shoppingsystem/catalog/app/products"
	"github.com/shoppingsystem/catalog/app/web"
)

func NewRouter(c *categories.CategoryHandler, p *products.ProductHandler, health *HealthHandler, view web.Renderer) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", http.RedirectHandler("/products", http.StatusFound))
	mux.HandleFunc("GET /healthz", health.HandleHealth)

	mux.HandleFunc("GET /categories", c.HandleList)
	mux.HandleFunc("GET /categories/new", c.HandleNew)
	mux.HandleFunc("POST /categories", c.HandleCreate)
	mux.HandleFunc("GET /categories/{id}/edit", c.HandleEdit)
	mux.HandleFunc("POST /categories/{id}", c.HandleUpdate)
	mux.HandleFunc("POST /categories/{id}/delete", c.HandleDelete)

	mux.HandleFunc("GET /products", p.HandleList)
	mux.HandleFunc("GET /products/new", p.HandleNew)
	mux.HandleFunc("POST /products", p.HandleCreate)
	mux.HandleFunc("GET /products/{id}", p.HandleGetProduct)
	mux.HandleFunc("GET /products/{id}/edit", p.HandleEdit)
	mux.HandleFunc("POST /products/{id}", p.HandleUpdate)
	mux.HandleFunc("POST /products/{id}/delete", p.HandleDelete)

	return web.Chain(mux, web.RequestID, web.Logging, web.Recover(view))
}
