// file: internals/helpers/pagination.go
package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageSize mengikuti kontrak frontend lama: 12 item per halaman.
const DefaultPageSize = 12

/* ===============================
   Paging resolver (query → page/perPage/offset)
=================================*/

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging membaca ?page= & ?per_page= (atau alias ?limit=) dan normalisasi.
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	pageStr := strings.TrimSpace(c.Query("page", "1"))

	perPageStr := strings.TrimSpace(c.Query("per_page"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultPerPage)))
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(perPageStr)
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

/* ===============================
   Page envelope
   {next, previous, count, totalPages, currentPage, results}
=================================*/

type Page struct {
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	Count       int64   `json:"count"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Results     any     `json:"results"`
}

// BuildPage membungkus satu halaman hasil ke dalam envelope yang dipakai
// frontend. Link next/previous berupa URL absolut, null di ujung.
func BuildPage(c *fiber.Ctx, results any, total int64, paging Paging) Page {
	totalPages := int((total + int64(paging.PerPage) - 1) / int64(paging.PerPage))
	if totalPages == 0 {
		totalPages = 1
	}

	page := Page{
		Count:       total,
		TotalPages:  totalPages,
		CurrentPage: paging.Page,
		Results:     results,
	}
	if paging.Page < totalPages {
		page.Next = pageLink(c, paging.Page+1)
	}
	if paging.Page > 1 {
		page.Previous = pageLink(c, paging.Page-1)
	}
	return page
}

func pageLink(c *fiber.Ctx, page int) *string {
	args := c.Context().QueryArgs()
	parts := make([]string, 0, args.Len()+1)
	args.VisitAll(func(key, value []byte) {
		if string(key) == "page" {
			return
		}
		parts = append(parts, fmt.Sprintf("%s=%s", key, value))
	})
	parts = append(parts, fmt.Sprintf("page=%d", page))

	link := c.BaseURL() + c.Path() + "?" + strings.Join(parts, "&")
	return &link
}

// JsonPage: response list dengan page envelope.
func JsonPage(c *fiber.Ctx, page Page) error {
	return c.Status(fiber.StatusOK).JSON(page)
}
