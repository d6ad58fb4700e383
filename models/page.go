package models

// PageSize is the fixed number of rows per listing page.
const PageSize = 5

type PageRequest struct {
	Number int
	Size   int
	Sort   string
}

// Page is one slice of an ordered listing plus what a pager needs to render
// its controls.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func (r PageRequest) normalize() PageRequest {
	if r.Number < 0 {
		r.Number = 0
	}
	if r.Size < 1 {
		r.Size = PageSize
	}
	if r.Sort == "" {
		r.Sort = "id"
	}
	return r
}

// NewPage assembles a page from its content and the total row count.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	req = req.normalize()
	if content == nil {
		content = []T{}
	}

	totalPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	return Page[T]{
		Content:       content,
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Number == 0,
		Last:          req.Number+1 >= totalPages,
	}
}
