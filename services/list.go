package services

import "tradehub/db"

// ListParams are the query options shared by the admin master lists.
type ListParams struct {
	Search    string
	IsActive  *bool
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (p ListParams) options(f db.Filter) db.ListOptions {
	f.Search = p.Search
	if p.IsActive != nil {
		if f.Equals == nil {
			f.Equals = map[string]any{}
		}
		f.Equals["is_active"] = *p.IsActive
	}
	return db.ListOptions{
		Filter:    f,
		Page:      p.Page,
		Limit:     p.Limit,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
	}
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ListResult[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

func mapPage[M any, R any](page db.Page[M], fn func(*M) R) *ListResult[R] {
	out := make([]R, 0, len(page.Items))
	for i := range page.Items {
		out = append(out, fn(&page.Items[i]))
	}
	return &ListResult[R]{
		Data: out,
		Meta: PageMeta{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}
