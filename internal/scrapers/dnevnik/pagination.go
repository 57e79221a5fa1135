package dnevnik

import (
	"context"
	"iter"
)

// PageFetcher fetches and parses page number `page` (1-based) of a people listing.
type PageFetcher func(ctx context.Context, page int) (UserPage, error)

// Paginate yields pages 1..maxPages. It stops before yielding the first empty
// page (Count == 0), after yielding an error, or when ctx is done.
func Paginate(ctx context.Context, maxPages int, fetch PageFetcher) iter.Seq2[UserPage, error] {
	return func(yield func(UserPage, error) bool) {
		for page := 1; page <= maxPages; page++ {
			if err := ctx.Err(); err != nil {
				yield(UserPage{}, err)
				return
			}
			users, err := fetch(ctx, page)
			if err != nil {
				yield(UserPage{}, err)
				return
			}
			if users.Empty() {
				return
			}
			if !yield(users, nil) {
				return
			}
		}
	}
}

// CollectPages drains a page sequence, returning the pages read before the first error.
func CollectPages(pages iter.Seq2[UserPage, error]) ([]UserPage, error) {
	out := []UserPage{}
	for page, err := range pages {
		if err != nil {
			return out, err
		}
		out = append(out, page)
	}
	return out, nil
}
