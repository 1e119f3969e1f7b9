package http

import (
	"net/http"
	"net/url"
	"strconv"

	"studio/pkg/config"
	apperrors "studio/pkg/errors"
	"studio/pkg/model"
)

// ExtractPage reads the 1-based ?page= parameter. A missing value means page 1.
func ExtractPage(r *http.Request) (int, error) {
	s := r.URL.Query().Get("page")
	if s == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid page parameter: " + s)
	}
	return config.NormalizePage(page), nil
}

// ExtractInt64 reads an optional integer query parameter.
func ExtractInt64(r *http.Request, name string) (*int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return &v, nil
}

// TotalPages returns at least 1 so an empty listing still reports a single page.
func TotalPages(count int64, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 1
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

// BuildPageInfo fills in count, page numbers, and absolute next/previous links that keep
// every other query parameter of r.
func BuildPageInfo(r *http.Request, count int64, page, pageSize int) model.PageInfo {
	total := TotalPages(count, pageSize)
	info := model.PageInfo{
		Count:       count,
		CurrentPage: page,
		TotalPages:  total,
	}
	if page < total {
		info.Next = pageURL(r, page+1)
	}
	if page > 1 {
		info.Previous = pageURL(r, page-1)
	}
	return info
}

func pageURL(r *http.Request, page int) *string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	q := r.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	s := u.String()
	return &s
}
