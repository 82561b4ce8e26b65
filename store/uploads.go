package store

import (
	"context"
	"fmt"
	"io"

	apperrors "backoffice/pkg/errors"

	"golang.org/x/sync/errgroup"
)

type UploadAPI interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// File One file of a batch
type File struct {
	Name   string
	Reader io.Reader
}

// Uploaded A file that reached the asset store
type Uploaded struct {
	Index int
	Name  string
	URL   string
}

// FailedUpload A file that did not
type FailedUpload struct {
	Index int
	Name  string
	Err   error
}

// BatchResult Per-file outcome of a batch; both slices keep input order.
type BatchResult struct {
	Succeeded []Uploaded
	Failed    []FailedUpload
}

// URLs of the uploaded files, in input order.
func (r BatchResult) URLs() []string {
	urls := make([]string, len(r.Succeeded))
	for i, u := range r.Succeeded {
		urls[i] = u.URL
	}
	return urls
}

func (r BatchResult) Complete() bool { return len(r.Failed) == 0 }

// Uploads runs multi-file uploads.
type Uploads struct {
	api         UploadAPI
	concurrency int
	reporter
}

func NewUploads(a UploadAPI, notifier Notifier, concurrency int) *Uploads {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Uploads{api: a, concurrency: concurrency, reporter: reporter{notifier: notifier}}
}

// UploadAll uploads every file independently. A failed file does not stop
// or undo its siblings; the result says which ones made it. The error is
// non-nil when any file failed.
func (s *Uploads) UploadAll(ctx context.Context, files []File) (BatchResult, error) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, f := range files {
		g.Go(func() error {
			urls[i], errs[i] = s.api.Upload(ctx, f.Name, f.Reader)
			return nil
		})
	}
	_ = g.Wait()

	var result BatchResult
	var firstErr error
	for i, f := range files {
		if errs[i] != nil {
			result.Failed = append(result.Failed, FailedUpload{Index: i, Name: f.Name, Err: errs[i]})
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		result.Succeeded = append(result.Succeeded, Uploaded{Index: i, Name: f.Name, URL: urls[i]})
	}

	if firstErr != nil {
		msg := fmt.Sprintf("%d of %d uploads failed: %s", len(result.Failed), len(files), apperrors.Message(firstErr))
		return result, s.failure(apperrors.Wrap(firstErr, apperrors.AsAppError(firstErr).Code, msg))
	}
	s.success(fmt.Sprintf("%d files uploaded", len(files)))
	return result, nil
}
