package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/upload"
)

// UploadGroup binds the three {upload} endpoints — POST to accept a
// multipart body, GET to list what's stored, GET/<name> to download —
// to one upload.Store. The route's alias (§4.1 pattern 2) only renames
// the mount's URL segment, handled by the route builder; it plays no
// part in which multipart fields POST accepts.
type UploadGroup struct {
	Store *upload.Store
}

// NewUploadGroup builds an UploadGroup over store.
func NewUploadGroup(store *upload.Store) *UploadGroup {
	return &UploadGroup{Store: store}
}

// listResponse is the JSON shape both the upload listing and a create's
// summary respond with (§4.7).
type listResponse struct {
	Files []upload.Entry `json:"files"`
	Total int            `json:"total"`
}

// Create handles POST <dir>: every multipart field carrying a filename
// is streamed to disk, regardless of its field name.
func (g *UploadGroup) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, apperr.ErrFileNotUploaded)
		return
	}

	var saved []upload.Entry
	for _, headers := range form.File {
		for _, fh := range headers {
			if fh.Filename == "" {
				continue
			}
			src, err := fh.Open()
			if err != nil {
				fail(c, apperr.ErrUploadIoFailure)
				return
			}
			entry, err := g.Store.Save(fh.Filename, src)
			src.Close()
			if err != nil {
				fail(c, err)
				return
			}
			saved = append(saved, entry)
		}
	}

	if len(saved) == 0 {
		fail(c, apperr.ErrFileNotUploaded)
		return
	}

	c.JSON(http.StatusCreated, listResponse{Files: saved, Total: len(saved)})
}

// List handles GET <dir>.
func (g *UploadGroup) List(c *gin.Context) {
	entries, err := g.Store.List()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Files: entries, Total: len(entries)})
}

// Download handles GET <dir>/{name}.
func (g *UploadGroup) Download(c *gin.Context) {
	name := c.Param("name")
	path, err := g.Store.Path(name)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Type", upload.ContentType(name))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.File(path)
}
