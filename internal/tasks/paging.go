package tasks

import (
	"context"
	"iter"
)

// pageFunc fetches the page addressed by token ("" for the first page) and returns it with the next token.
type pageFunc[P any] func(ctx context.Context, token string) (P, string, error)

// pages yields successive pages from fetch, following the continuation token until it is empty.
//
// The sequence is finite and not restartable. A fetch error is yielded once and ends the sequence.
func pages[P any](ctx context.Context, fetch pageFunc[P]) iter.Seq2[P, error] {
	return func(yield func(P, error) bool) {
		token := ""
		for {
			page, next, err := fetch(ctx, token)
			if err != nil {
				yield(page, err)
				return
			}
			if !yield(page, nil) || next == "" {
				return
			}
			token = next
		}
	}
}
