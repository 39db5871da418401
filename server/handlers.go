package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/skulookup/core"
)

type healthResponse struct {
	Status      string      `json:"status"`
	Timestamp   string      `json:"timestamp"`
	Environment Environment `json:"environment"`
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func (s *Server) handleSearch(c *gin.Context) {
	var req core.QueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, core.Failed(err.Error()))
		return
	}

	var (
		res       *core.QueryResult
		searchErr error
	)
	ctx := c.Request.Context()
	if err := s.pool.Do(func() {
		res, searchErr = s.searcher.Search(ctx, req.PartialCode)
	}); err != nil {
		s.logger.Warn("search rejected", "requestId", c.GetString(requestIDKey), "err", err)
		c.JSON(http.StatusServiceUnavailable, core.Failed(ErrServerBusy.Error()))
		return
	}

	switch {
	case errors.Is(searchErr, core.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, core.Failed(core.ErrEmptyQuery.Error()))
	case errors.Is(searchErr, core.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, core.Failed(searchErr.Error()))
	case searchErr != nil:
		s.logger.Error("search failed", "requestId", c.GetString(requestIDKey), "err", searchErr)
		c.JSON(http.StatusInternalServerError, core.Failed(searchErr.Error()))
	default:
		s.writeTagged(c, res)
	}
}

// writeTagged writes v as JSON with an ETag and answers a matching
// If-None-Match with 304.
func (s *Server) writeTagged(c *gin.Context, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("error encoding response", "requestId", c.GetString(requestIDKey), "err", err)
		c.JSON(http.StatusInternalServerError, core.Failed("internal server error"))
		return
	}

	tag := etagFor(body)
	c.Header("ETag", tag)
	c.Header("Cache-Control", "no-cache")
	if etagMatches(c.GetHeader("If-None-Match"), tag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (s *Server) handleHealthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:      "OK",
		Timestamp:   s.now().UTC().Format(timestampLayout),
		Environment: s.environment,
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	if !isFile(s.indexFile) {
		s.notFound(c)
		return
	}
	c.File(s.indexFile)
}

func (s *Server) handleStatic(c *gin.Context) {
	method := c.Request.Method
	if s.staticDir == "" || (method != http.MethodGet && method != http.MethodHead) {
		s.notFound(c)
		return
	}

	name := filepath.Join(s.staticDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	if !isFile(name) {
		s.notFound(c)
		return
	}
	c.File(name)
}

func (s *Server) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, core.Failed("not found"))
}

func isFile(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
