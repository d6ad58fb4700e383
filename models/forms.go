package models

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	CategoryFields = []string{"name"}
	ProductFields  = []string{"name", "categoryId", "price", "stockQuantity", "brand", "description", "imageUrl"}
)

// FormValues returns the trimmed submitted values for the given fields.
func FormValues(form url.Values, fields []string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = strings.TrimSpace(form.Get(f))
	}
	return values
}

// BindCategory builds a candidate category from a submitted form.
func BindCategory(form url.Values) (*Category, ValidationErrors) {
	v := FormValues(form, CategoryFields)
	return &Category{Name: v["name"]}, ValidationErrors{}
}

// BindProduct builds a candidate product from a submitted form. Values that
// cannot be parsed are reported as field errors and left at their zero value.
func BindProduct(form url.Values) (*Product, ValidationErrors) {
	v := FormValues(form, ProductFields)
	errs := ValidationErrors{}

	p := &Product{
		Name:        v["name"],
		Brand:       v["brand"],
		Description: v["description"],
		ImageURL:    v["imageUrl"],
	}

	if s := v["categoryId"]; s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			errs.Add("categoryId", "Category is required. Select a valid category.")
		} else {
			p.CategoryID = uint(id)
		}
	}

	if s := v["price"]; s != "" {
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			errs.Add("price", "Price must be a number.")
		} else {
			p.Price = decimal.NewNullDecimal(d)
		}
	}

	if s := v["stockQuantity"]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errs.Add("stockQuantity", "Stock quantity must be a whole number.")
		} else {
			p.StockQuantity = &n
		}
	}

	return p, errs
}

// FormValues renders the category back into form fields.
func (c *Category) FormValues() map[string]string {
	return map[string]string{"name": c.Name}
}

// FormValues renders the product back into form fields.
func (p *Product) FormValues() map[string]string {
	values := map[string]string{
		"name":          p.Name,
		"categoryId":    "",
		"price":         "",
		"stockQuantity": "",
		"brand":         p.Brand,
		"description":   p.Description,
		"imageUrl":      p.ImageURL,
	}
	if p.CategoryID != 0 {
		values["categoryId"] = strconv.FormatUint(uint64(p.CategoryID), 10)
	}
	if p.Price.Valid {
		values["price"] = p.Price.Decimal.StringFixed(2)
	}
	if p.StockQuantity != nil {
		values["stockQuantity"] = strconv.Itoa(*p.StockQuantity)
	}
	return values
}
