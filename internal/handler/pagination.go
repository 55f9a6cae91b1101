package handler

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageRequest is the parsed ?page=&page_size= query. Without a page
// parameter the whole list is returned bare.
type pageRequest struct {
	paged  bool
	number int
	size   int
}

func parsePage(r *http.Request) (pageRequest, error) {
	q := r.URL.Query()
	raw := q.Get("page")
	if raw == "" {
		return pageRequest{}, nil
	}

	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return pageRequest{}, domain.NewNotFoundError("page " + raw)
	}

	size := defaultPageSize
	if s, err := strconv.Atoi(q.Get("page_size")); err == nil && s > 0 {
		size = min(s, maxPageSize)
	}
	// no stored list reaches an offset past MaxInt
	if number-1 > math.MaxInt/size {
		return pageRequest{}, domain.NewNotFoundError("page " + raw)
	}

	return pageRequest{paged: true, number: number, size: size}, nil
}

func (p pageRequest) page() domain.Page {
	if !p.paged {
		return domain.Page{}
	}
	return domain.Page{Limit: p.size, Offset: (p.number - 1) * p.size}
}

// pageLink returns the absolute URL of page number n, or nil when n is
// outside 1..last.
func pageLink(r *http.Request, n, total, size int) *string {
	last := max(1, (total+size-1)/size)
	if n < 1 || n > last {
		return nil
	}

	u := url.URL{Scheme: requestScheme(r), Host: r.Host, Path: r.URL.Path}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(n))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// serveList writes either the bare list or the paginated envelope.
func serveList[D any, H any](h *Handler, w http.ResponseWriter, r *http.Request, list func(*http.Request, domain.Page) ([]*D, int, error), toHTTP func(*D) H) {
	req, err := parsePage(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items, total, err := list(r, req.page())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	results := mapAll(items, toHTTP)

	if !req.paged {
		writeJSON(w, http.StatusOK, results)
		return
	}

	if req.number > 1 && len(results) == 0 {
		h.handleError(w, r, domain.NewNotFoundError("page "+strconv.Itoa(req.number)))
		return
	}

	writeJSON(w, http.StatusOK, PageResponse[H]{
		Count:    total,
		Next:     pageLink(r, req.number+1, total, req.size),
		Previous: pageLink(r, req.number-1, total, req.size),
		Results:  results,
	})
}
