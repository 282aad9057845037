// Package pagination renders collection responses in a fixed envelope:
// total count, next/previous page links, and the page of results. The count
// and links are computed from the filtered and ordered set, not the
// unfiltered collection.
package pagination

import (
	"net/http"
	"strconv"
)

type Page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage builds the envelope for one page of a collection. page is 1-based;
// results must already be the slice for that page.
func NewPage(req *http.Request, page, pageSize, count int, results interface{}) *Page {
	p := &Page{
		Count:   count,
		Results: results,
	}

	if pageSize <= 0 {
		return p
	}

	lastPage := (count + pageSize - 1) / pageSize
	if page < lastPage {
		next := pageLink(req, page+1)
		p.Next = &next
	}
	if page > 1 {
		// Past the last page, previous points back at the last real page
		// so the links stay navigable.
		prevPage := page - 1
		if prevPage > lastPage {
			prevPage = lastPage
			if prevPage < 1 {
				prevPage = 1
			}
		}
		prev := pageLink(req, prevPage)
		p.Previous = &prev
	}

	return p
}

// Offset converts a 1-based page number into a row offset.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

func pageLink(req *http.Request, page int) string {
	u := *req.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	if u.Host == "" {
		u.Host = req.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https" {
			u.Scheme = "https"
		}
	}

	return u.String()
}
