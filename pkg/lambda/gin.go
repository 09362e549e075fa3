package lambda

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// requestIDKey mirrors the key set by the RequestID middleware
const requestIDKey = "request_id"

// GinHandler mounts a framework-agnostic handler on a gin route
func GinHandler(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			data, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			body = data
		}

		req := &Request{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Resource:    c.FullPath(),
			Headers:     flatten(c.Request.Header),
			QueryParams: flatten(c.Request.URL.Query()),
			Body:        body,
			PathParams:  make(map[string]string, len(c.Params)),
			RequestID:   c.GetString(requestIDKey),
		}
		for _, p := range c.Params {
			req.PathParams[p.Key] = p.Value
		}

		resp, err := h(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
	}
}

func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
