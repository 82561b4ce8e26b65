package mockserver

import (
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"backoffice/mockserver/response"
	"backoffice/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes caps a single file.
const maxUploadBytes = 10 << 20

type uploadResult struct {
	URL string `json:"url"`
}

// POST /assets/upload, multipart field "file"
func (s *Server) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, err, "multipart field file is required")
		return
	}
	if header.Size > maxUploadBytes {
		response.Fail(c, errors.Validation(map[string]string{"file": "must be at most 10 MB"}))
		return
	}
	f, err := header.Open()
	if err != nil {
		response.Fail(c, errors.Wrap(err, errors.CodeInternal, "failed to open upload"))
		return
	}
	defer f.Close()
	body, err := io.ReadAll(f)
	if err != nil {
		response.Fail(c, errors.Wrap(err, errors.CodeInternal, "failed to read upload"))
		return
	}

	name := path.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
	key := uuid.NewString() + "-" + name
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(body)
	}

	s.data.mu.Lock()
	s.data.assets[key] = asset{name: name, contentType: contentType, body: body}
	s.data.mu.Unlock()

	response.OK(c, uploadResult{URL: assetURL(c, key)}, "File uploaded successfully")
}

// GET /assets/files/:key
func (s *Server) serveAsset(c *gin.Context) {
	s.data.mu.RLock()
	a, ok := s.data.assets[c.Param("key")]
	s.data.mu.RUnlock()
	if !ok {
		response.Fail(c, errors.New(errors.CodeNotFound, "asset not found"))
		return
	}
	c.Data(http.StatusOK, a.contentType, a.body)
}

func assetURL(c *gin.Context, key string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/assets/files/" + url.PathEscape(key)
}
