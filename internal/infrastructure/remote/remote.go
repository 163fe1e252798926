// Package remote implements the domain gateways on top of the OnlyTop REST API.
package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
)

// resource joins a collection path with escaped segments.
func resource(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// notFound is a backend 404 that also matches shared.ErrNotFound.
type notFound struct {
	*apiclient.APIError
}

func (e notFound) Is(target error) bool {
	return target == shared.ErrNotFound
}

func (e notFound) Unwrap() error {
	return e.APIError
}

// translate maps a backend 404 to shared.ErrNotFound, keeping the backend message.
// Every other error passes through untouched.
func translate(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return notFound{apiErr}
	}
	return err
}

// requireID rejects blank identifiers before a request is made.
func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return shared.NewDomainError("INVALID_INPUT", "id is required")
	}
	return nil
}

// getList fetches a collection and decodes the items with the total count.
func getList[T any](ctx context.Context, c *apiclient.Client, path string, query url.Values) ([]T, int64, error) {
	resp, err := c.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, 0, translate(err)
	}
	return apiclient.DecodeList[T](resp.Body)
}

// getPage fetches a paginated collection.
func getPage[T any](ctx context.Context, c *apiclient.Client, path string, filter shared.Filter) (shared.Paginated[T], error) {
	items, total, err := getList[T](ctx, c, path, filter.Query())
	if err != nil {
		return shared.Paginated[T]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
