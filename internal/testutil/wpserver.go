// Package testutil provides a fake WordPress/WooCommerce REST server for
// end-to-end tests of the transport and client.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// Credentials accepted by the fake server
const (
	ConsumerKey    = "ck_test"
	ConsumerSecret = "cs_test"
)

// UploadedFile describes a file part received by the server
type UploadedFile struct {
	Field       string `json:"field"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Server is a running fake API
type Server struct {
	*httptest.Server
	hits atomic.Int64
}

// Hits returns the number of requests received
func (s *Server) Hits() int64 {
	return s.hits.Load()
}

// BaseURL returns the wp-json root of the fake API
func (s *Server) BaseURL() string {
	return s.URL + "/wp-json/"
}

// NewServer starts the fake API. Routes under /wp-json:
//   - ANY  /echo        echoes method, query, JSON body or multipart form
//   - GET  /missing     404 with a WP_Error body
//   - GET  /wp-error    200 with a WP_Error body
//   - GET  /scalar      200 with a JSON string body
//   - GET  /list        200 with a JSON array body
//   - GET  /status/:n   responds with status n
//   - GET  /compressed  gzip encoded JSON object
func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		s.hits.Add(1)
		c.Next()
	})

	api := r.Group("/wp-json", requireAuth)

	api.Any("/echo", echo)
	api.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "rest_no_route",
			"message": "No route was found matching the URL and request method.",
			"data":    gin.H{"status": 404},
		})
	})
	api.GET("/wp-error", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"code":    "rest_missing_callback_param",
			"message": "Missing parameter(s): code",
			"data":    gin.H{"status": 400, "params": []string{"code"}},
		})
	})
	api.GET("/scalar", func(c *gin.Context) {
		c.JSON(http.StatusOK, "simple string")
	})
	api.GET("/list", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{{"id": 1}, {"id": 2}})
	})
	api.GET("/status/:code", func(c *gin.Context) {
		var uri struct {
			Code int `uri:"code" binding:"required"`
		}
		if err := c.ShouldBindUri(&uri); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.String(uri.Code, "status %d", uri.Code)
	})

	api.GET("/compressed", compressed)

	s.Server = httptest.NewServer(r)
	return s
}

func requireAuth(c *gin.Context) {
	user, pass, ok := c.Request.BasicAuth()
	if !ok || user != ConsumerKey || pass != ConsumerSecret {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"code":    "woocommerce_rest_cannot_view",
			"message": "Sorry, you cannot list resources.",
		})
		return
	}
	c.Next()
}

func echo(c *gin.Context) {
	out := gin.H{
		"method":       c.Request.Method,
		"query":        flatten(c.Request.URL.Query()),
		"content_type": c.ContentType(),
		"request_id":   c.GetHeader("X-Request-ID"),
		"user_agent":   c.GetHeader("User-Agent"),
	}

	switch c.ContentType() {
	case gin.MIMEJSON:
		var body any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		out["json"] = body
	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		out["fields"] = flatten(form.Value)

		files := []UploadedFile{}
		for field, headers := range form.File {
			for _, fh := range headers {
				f := UploadedFile{
					Field:       field,
					Filename:    fh.Filename,
					Size:        fh.Size,
					ContentType: fh.Header.Get("Content-Type"),
				}
				files = append(files, f)
			}
		}
		out["files"] = files
	default:
		if c.Request.Body != nil {
			raw, _ := io.ReadAll(c.Request.Body)
			if len(raw) > 0 {
				out["raw"] = string(raw)
			}
		}
	}

	c.JSON(http.StatusOK, out)
}

func flatten(values map[string][]string) map[string]string {
	flat := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			flat[k] = v[len(v)-1]
		}
	}
	return flat
}

func compressed(c *gin.Context) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(`{"compressed":true}`)); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	if err := zw.Close(); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Content-Encoding", "gzip")
	c.Data(http.StatusOK, gin.MIMEJSON, buf.Bytes())
}
