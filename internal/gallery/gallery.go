// Package gallery shapes portfolio and service listings fetched from the API for display.
package gallery

import (
	"cmp"
	"slices"
	"strings"

	"studio/pkg/markup"
	"studio/pkg/model"

	"github.com/samber/lo"
)

const (
	FilterFeatured = "featured"
	FilterAll      = "all"
)

// FilterItems keeps the items matching filter: "featured", "all", or a category name
// compared case-insensitively.
func FilterItems(items []model.PortfolioItem, filter string) []model.PortfolioItem {
	filter = strings.ToLower(strings.TrimSpace(filter))

	switch filter {
	case FilterAll, "":
		return slices.Clone(items)
	case FilterFeatured:
		return lo.Filter(items, func(item model.PortfolioItem, _ int) bool {
			return item.IsFeaturedOnHome
		})
	default:
		return lo.Filter(items, func(item model.PortfolioItem, _ int) bool {
			return strings.EqualFold(item.Category.Name, filter)
		})
	}
}

// Filters lists the filter choices for items: featured, all, then each category once in
// first-seen order.
func Filters(items []model.PortfolioItem) []string {
	categories := lo.Uniq(lo.Map(items, func(item model.PortfolioItem, _ int) string {
		return strings.ToLower(item.Category.Name)
	}))
	return append([]string{FilterFeatured, FilterAll}, lo.Compact(categories)...)
}

// PageCount is the number of pages of size needed for n items, at least 1.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Paginate returns the 1-based page of items. Out of range pages are empty.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// ServiceCard is a service ready for listing.
type ServiceCard struct {
	ID            int64
	Name          string
	Features      []string
	StartingPrice string
}

// Cards orders services by ascending priority and extracts their feature lines.
func Cards(services []model.Service) []ServiceCard {
	sorted := slices.Clone(services)
	slices.SortStableFunc(sorted, func(a, b model.Service) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	return lo.Map(sorted, func(s model.Service, _ int) ServiceCard {
		return ServiceCard{
			ID:            s.ID,
			Name:          s.Name,
			Features:      markup.Features(s.Description),
			StartingPrice: s.StartingPrice,
		}
	})
}
