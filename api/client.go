/*
Package api holds what the resource API packages share: the client they call
through, list query building and envelope unwrapping.

The resource packages under api/ map typed parameters to exactly one HTTP
call each. Auth, retries and error normalisation happen in the client.
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"backoffice/domain/shared"
	"backoffice/infrastructure/httpclient"
)

// Client is satisfied by *httpclient.Client.
type Client interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...httpclient.CallOption) error
	Upload(ctx context.Context, path, field, filename string, r io.Reader, out any, opts ...httpclient.CallOption) error
}

var _ Client = (*httpclient.Client)(nil)

// One performs a call whose envelope carries a single record.
func One[T any](ctx context.Context, c Client, method, path string, body any, opts ...httpclient.CallOption) (T, error) {
	var env shared.Envelope[T]
	if err := c.Do(ctx, method, path, body, &env, opts...); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

// List performs a GET whose envelope carries a page of records.
func List[T any](ctx context.Context, c Client, path string) (shared.Page[T], error) {
	var env shared.Envelope[[]T]
	if err := c.Do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return shared.Page[T]{}, err
	}
	items := env.Data
	if items == nil {
		items = []T{}
	}
	return shared.Page[T]{Items: items, Pagination: env.Meta}, nil
}

// Delete performs a DELETE; only the status and success flag matter.
func Delete(ctx context.Context, c Client, path string) error {
	var env shared.Envelope[json.RawMessage]
	return c.Do(ctx, http.MethodDelete, path, nil, &env)
}

// ByID joins a collection path and an id.
func ByID(collection string, id int64) string {
	return fmt.Sprintf("%s/%d", collection, id)
}
