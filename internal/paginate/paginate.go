// Package paginate turns continuation-token list APIs into sequences.
//
// AWS list operations return one page of results plus an opaque token
// (Marker, NextMarker, NextToken) that selects the next page. PageFunc wraps
// one such call; Pages and Collect walk the token chain until it ends.
package paginate

import (
	"context"
	"fmt"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// PageFunc fetches the page selected by token. A nil token requests the
// first page. The returned next token is nil or empty on the last page.
type PageFunc[T any] func(ctx context.Context, token *string) (items []T, next *string, err error)

// Pages returns a finite sequence of every item across all pages. Each
// range over the returned sequence restarts from the first page. Iteration
// stops at the first error, which is yielded with the zero value of T.
func Pages[T any](ctx context.Context, fetch PageFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var token *string
		for {
			items, next, err := fetch(ctx, token)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if aws.ToString(next) == "" {
				return
			}
			// A token that does not advance would loop forever.
			if token != nil && *token == *next {
				var zero T
				yield(zero, fmt.Errorf("paginate: continuation token %q repeated", *next))
				return
			}
			token = next
		}
	}
}

// Collect accumulates every item of every page before returning.
func Collect[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var all []T
	for item, err := range Pages(ctx, fetch) {
		if err != nil {
			return nil, err
		}
		all = append(all, item)
	}
	return all, nil
}
