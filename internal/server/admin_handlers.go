package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
)

const maxDocumentSize = 1 << 20

var adminKinds = []apiclient.CatalogKind{apiclient.KindCourses, apiclient.KindWorkshops, apiclient.KindHackathons}

// adminDashboard shows per-collection counts. Collections that fail to load
// are reported individually.
func (s *Server) adminDashboard(c *gin.Context) {
	rs := getRequestSession(c)
	counts := gin.H{}
	errs := gin.H{}

	for _, kind := range adminKinds {
		docs, err := rs.api.AdminList(c.Request.Context(), kind)
		if apiclient.IsUnauthorized(err) {
			s.handleAPIError(c, err)
			return
		}
		if err != nil {
			errs[string(kind)] = err.Error()
			continue
		}
		counts[string(kind)] = len(docs)
	}

	view := gin.H{"page": "admin", "counts": counts}
	if len(errs) > 0 {
		view["errors"] = errs
		view["retry"] = true
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) adminList(c *gin.Context) {
	kind, ok := s.catalogKind(c)
	if !ok {
		return
	}

	rs := getRequestSession(c)
	docs, err := rs.api.AdminList(c.Request.Context(), kind)
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "admin-" + string(kind), "items": docs})
}

func (s *Server) adminCreate(c *gin.Context) {
	kind, ok := s.catalogKind(c)
	if !ok {
		return
	}
	doc, ok := s.readDocument(c)
	if !ok {
		return
	}

	rs := getRequestSession(c)
	created, err := rs.api.AdminCreate(c.Request.Context(), kind, doc)
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": created})
}

func (s *Server) adminUpdate(c *gin.Context) {
	kind, ok := s.catalogKind(c)
	if !ok {
		return
	}
	doc, ok := s.readDocument(c)
	if !ok {
		return
	}

	rs := getRequestSession(c)
	updated, err := rs.api.AdminUpdate(c.Request.Context(), kind, c.Param("id"), doc)
	if err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": updated})
}

func (s *Server) adminDelete(c *gin.Context) {
	kind, ok := s.catalogKind(c)
	if !ok {
		return
	}

	rs := getRequestSession(c)
	if err := rs.api.AdminDelete(c.Request.Context(), kind, c.Param("id")); err != nil {
		s.handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (s *Server) catalogKind(c *gin.Context) (apiclient.CatalogKind, bool) {
	kind := apiclient.CatalogKind(c.Param("kind"))
	if !kind.Valid() {
		respondWithError(c, http.StatusNotFound, "Unknown collection")
		return "", false
	}
	return kind, true
}

// readDocument accepts any JSON object; field validation belongs to the backend
func (s *Server) readDocument(c *gin.Context) (apiclient.Document, bool) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentSize))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Failed to read request body")
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		respondWithError(c, http.StatusBadRequest, "Request body must be a JSON object")
		return nil, false
	}
	return apiclient.Document(data), true
}
