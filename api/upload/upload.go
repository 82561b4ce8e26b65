// Package upload wraps the asset upload endpoint.
package upload

import (
	"context"
	"io"
	"strings"

	"backoffice/api"
	"backoffice/domain/shared"
	apperrors "backoffice/pkg/errors"
)

const (
	path      = "/assets/upload"
	formField = "file"
)

// Result Data of a successful upload
type Result struct {
	URL string `json:"url"`
}

type API struct {
	c api.Client
}

func New(c api.Client) *API {
	return &API{c: c}
}

// Upload sends one file and returns its public URL.
func (a *API) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var env shared.Envelope[Result]
	if err := a.c.Upload(ctx, path, formField, filename, r, &env); err != nil {
		return "", err
	}
	if strings.TrimSpace(env.Data.URL) == "" {
		return "", apperrors.New(apperrors.CodeServer, "upload response carried no url")
	}
	return env.Data.URL, nil
}
