package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/elnormous/contenttype"
	"github.com/gin-gonic/gin"
)

// Request-side overrides of the configured response.
const (
	QueryContentType  = "content_type"
	QueryStatus       = "status"
	HeaderContentType = "X-Echo-Content-Type"
	HeaderStatus      = "X-Echo-Status"

	// ContentTypeNone omits the Content-Type header.
	ContentTypeNone = "none"
)

// Echo is the JSON document the /echo route answers with.
type Echo struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Query       map[string]string `json:"query,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	ContentType string            `json:"content_type,omitempty"`
	Form        map[string]string `json:"form,omitempty"`
	Body        string            `json:"body,omitempty"`
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.Any("/echo", s.echo)
	s.engine.Any("/empty", s.empty)
}

// echo describes the request as JSON when the response type is JSON, and
// returns the request body unchanged otherwise.
func (s *Server) echo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	contentType, status := s.responseFor(c)

	if !isJSON(contentType) {
		s.write(c, contentType, status, body)
		return
	}

	e := Echo{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Query:       flatten(c.Request.URL.Query()),
		Headers:     make(map[string]string),
		ContentType: c.GetHeader("Content-Type"),
		Body:        string(body),
	}
	for _, h := range []string{"Accept", "Content-Type", "Authorization"} {
		if v := c.GetHeader(h); v != "" {
			e.Headers[h] = v
		}
	}
	if mediaType(e.ContentType) == "application/x-www-form-urlencoded" {
		// ParseQuery keeps every valid pair even when it reports an error.
		values, _ := url.ParseQuery(string(body))
		e.Form = flatten(values)
	}

	data, err := json.Marshal(e)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	s.write(c, contentType, status, data)
}

// empty answers with the response type and no body.
func (s *Server) empty(c *gin.Context) {
	contentType, status := s.responseFor(c)
	s.write(c, contentType, status, nil)
}

// responseFor resolves the content type and status of a response from the
// request overrides and the configuration.
func (s *Server) responseFor(c *gin.Context) (string, int) {
	contentType := s.config.ContentType
	if v := firstNonEmpty(c.Query(QueryContentType), c.GetHeader(HeaderContentType)); v != "" {
		contentType = v
	}
	status := s.config.Status
	if v := firstNonEmpty(c.Query(QueryStatus), c.GetHeader(HeaderStatus)); v != "" {
		if code, err := strconv.Atoi(v); err == nil && validStatus(code) {
			status = code
		}
	}
	return contentType, status
}

func (s *Server) write(c *gin.Context, contentType string, status int, body []byte) {
	if strings.EqualFold(contentType, ContentTypeNone) {
		c.Writer.Header()["Content-Type"] = nil
	} else {
		c.Header("Content-Type", contentType)
	}
	c.Status(status)
	if len(body) > 0 {
		_, _ = c.Writer.Write(body)
	} else {
		c.Writer.WriteHeaderNow()
	}
}

func isJSON(contentType string) bool {
	mt := mediaType(contentType)
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// mediaType returns "type/subtype" in lower case, or "" when contentType
// does not parse.
func mediaType(contentType string) string {
	mt := contenttype.NewMediaType(contentType)
	if mt.Type == "" {
		return ""
	}
	return strings.ToLower(mt.Type + "/" + mt.Subtype)
}

func flatten(values url.Values) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
