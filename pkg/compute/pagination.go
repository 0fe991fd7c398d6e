package compute

import (
	"context"
)

// PaginationClient is the minimal listing surface the pagination helpers
// need. The path may be a templated API path for the first page or the
// exact absolute href taken from a page's "next" link; implementations
// must accept both.
type PaginationClient[T any] interface {
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*ListResponse[T], error)
}

// PaginationOptions tunes the page-fetching helpers.
type PaginationOptions struct {
	// PageSize sets the per-page limit sent with the initial request.
	PageSize int
	// MaxPages caps the number of pages fetched. Zero means unbounded.
	MaxPages int
}

// DefaultPaginationOptions returns options that defer the page size to the
// provider and fetch until the collection is exhausted.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{}
}

// PaginationIterator lazily walks a paginated collection. Items from the
// current page are yielded without I/O; crossing a page boundary issues
// exactly one request, following the page's "next" link verbatim. Query
// params are sent with the initial request only: next links are
// self-contained and authoritative.
//
// Each iterator is an independent forward-only sequence; nothing is cached
// across iterators. A fetch failure is delivered by Next exactly once, at
// the point the consumer would have received the next item, after which
// the iterator is exhausted.
type PaginationIterator[T any] struct {
	ctx     context.Context
	client  PaginationClient[T]
	path    string
	params  *QueryParams
	buffer  []T
	cursor  int
	next    *Link
	started bool
	done    bool
	err     error
}

// NewPaginationIterator creates an iterator over the collection at path.
// No request is issued until the first HasNext or Next call.
func NewPaginationIterator[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams) *PaginationIterator[T] {
	return &PaginationIterator[T]{
		ctx:    ctx,
		client: client,
		path:   path,
		params: params,
	}
}

// HasNext reports whether another item (or a pending fetch error) is
// available, fetching the next page if the current one is exhausted.
func (it *PaginationIterator[T]) HasNext() bool {
	if it.err != nil {
		return true
	}

	for it.cursor >= len(it.buffer) && !it.done {
		it.fetch()

		if it.err != nil {
			return true
		}
	}

	return it.cursor < len(it.buffer)
}

// Next returns the next item. It returns ErrNoMoreItems once the
// collection is exhausted, or the fetch error that aborted enumeration.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		return zero, ErrNoMoreItems
	}

	if it.err != nil {
		err := it.err
		it.err = nil
		it.done = true

		return zero, err
	}

	item := it.buffer[it.cursor]
	it.cursor++

	return item, nil
}

// All drains the iterator, returning every remaining item in page order.
// On failure it returns the items consumed so far along with the error.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach invokes fn for each remaining item, stopping on the first error
// from either the iterator or fn.
func (it *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return nil
}

// fetch loads the next page into the buffer. An empty page is terminal
// even when it carries a next link: a provider that keeps handing out
// next links over empty pages would otherwise pin the consumer in an
// infinite loop.
func (it *PaginationIterator[T]) fetch() {
	var (
		page *ListResponse[T]
		err  error
	)

	switch {
	case !it.started:
		it.started = true
		page, err = it.client.ListWithPath(it.ctx, it.path, it.params)
	case it.next != nil:
		page, err = it.client.ListWithPath(it.ctx, it.next.Href, nil)
	default:
		it.done = true

		return
	}

	if err != nil {
		it.err = err
		it.done = true

		return
	}

	it.buffer = page.Resources
	it.cursor = 0
	it.next = page.NextLink()

	if len(it.buffer) == 0 || it.next == nil {
		it.done = true
	}
}

// MappedIterator applies a transform to every item produced by an inner
// iterator. It is the explicit map-enumerate variant: transforming during
// enumeration is equivalent to mapping over the untransformed sequence.
type MappedIterator[T, U any] struct {
	inner *PaginationIterator[T]
	fn    func(T) U
}

// MapIterator wraps it so that every yielded item is passed through fn.
func MapIterator[T, U any](it *PaginationIterator[T], fn func(T) U) *MappedIterator[T, U] {
	return &MappedIterator[T, U]{inner: it, fn: fn}
}

// HasNext reports whether another item is available.
func (m *MappedIterator[T, U]) HasNext() bool {
	return m.inner.HasNext()
}

// Next returns the next transformed item.
func (m *MappedIterator[T, U]) Next() (U, error) {
	var zero U

	item, err := m.inner.Next()
	if err != nil {
		return zero, err
	}

	return m.fn(item), nil
}

// All drains the iterator, returning every remaining transformed item.
func (m *MappedIterator[T, U]) All() ([]U, error) {
	var items []U

	for m.HasNext() {
		item, err := m.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// FetchAllPages collects the whole collection into a slice, honoring the
// page-size and max-pages options. The caller's params are not mutated.
func FetchAllPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams, opts *PaginationOptions) ([]T, error) {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	page, err := client.ListWithPath(ctx, path, initialParams(params, opts))
	if err != nil {
		return nil, err
	}

	var all []T

	pages := 1

	for {
		all = append(all, page.Resources...)

		next := page.NextLink()
		if next == nil || len(page.Resources) == 0 {
			return all, nil
		}

		if opts.MaxPages > 0 && pages >= opts.MaxPages {
			return all, nil
		}

		page, err = client.ListWithPath(ctx, next.Href, nil)
		if err != nil {
			return nil, err
		}

		pages++
	}
}

// PageResult carries one page's items, or the error that ended streaming.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages fetches pages sequentially and delivers them on the returned
// channel, one PageResult per page. The channel is closed after the last
// page, after an error, or when ctx is cancelled. Consumption is pull-based:
// the next request is not issued until the previous page has been received.
func StreamPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams, opts *PaginationOptions) <-chan PageResult[T] {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		fetchPath := path
		fetchParams := initialParams(params, opts)
		pages := 0

		for {
			page, err := client.ListWithPath(ctx, fetchPath, fetchParams)
			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			pages++

			select {
			case results <- PageResult[T]{Items: page.Resources}:
			case <-ctx.Done():
				return
			}

			next := page.NextLink()
			if next == nil || len(page.Resources) == 0 {
				return
			}

			if opts.MaxPages > 0 && pages >= opts.MaxPages {
				return
			}

			fetchPath = next.Href
			fetchParams = nil
		}
	}()

	return results
}

// initialParams applies the option page size to a copy of params, leaving
// the caller's value untouched.
func initialParams(params *QueryParams, opts *PaginationOptions) *QueryParams {
	if opts.PageSize <= 0 {
		return params
	}

	merged := NewQueryParams()

	if params != nil {
		copied := *params
		merged = &copied
	}

	merged.Limit = opts.PageSize

	return merged
}
