package handlers

import (
	"context"
	"net/http"
	"strings"

	"serverless-crud-api/internal/response"
	"serverless-crud-api/pkg/lambda"
)

// Router dispatches API Gateway proxy requests to handlers by method and
// path pattern. Patterns use {name} segments, e.g. /users/{id}.
type Router struct {
	routes []route
}

type route struct {
	method   string
	segments []string
	handler  lambda.HandlerFunc
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{}
}

// Handle registers a handler for method and pattern
func (r *Router) Handle(method, pattern string, h lambda.HandlerFunc) {
	r.routes = append(r.routes, route{
		method:   method,
		segments: splitPath(pattern),
		handler:  h,
	})
}

// Dispatch runs the handler whose route matches req. Patterns match the tail
// of the request path, so stage or version prefixes are ignored. When the
// path matches nothing the route template in Resource is tried.
func (r *Router) Dispatch(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.Method == http.MethodOptions {
		return response.Success(nil, "OK"), nil
	}

	if rt, params, ok := r.find(req.Method, splitPath(req.Path)); ok {
		if req.PathParams == nil {
			req.PathParams = make(map[string]string, len(params))
		}
		for k, v := range params {
			if _, exists := req.PathParams[k]; !exists {
				req.PathParams[k] = v
			}
		}
		return rt.handler(ctx, req)
	}

	if req.Resource != "" {
		if rt, _, ok := r.find(req.Method, splitPath(normalizeResource(req.Resource))); ok {
			return rt.handler(ctx, req)
		}
	}

	return response.NotFound(MsgRouteNotFound), nil
}

func (r *Router) find(method string, path []string) (route, map[string]string, bool) {
	for _, rt := range r.routes {
		if rt.method != method {
			continue
		}
		if params, ok := match(rt.segments, path); ok {
			return rt, params, true
		}
	}
	return route{}, nil, false
}

// normalizeResource rewrites gin style :name segments to {name}
func normalizeResource(resource string) string {
	segments := splitPath(resource)
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func match(pattern, path []string) (map[string]string, bool) {
	if len(path) < len(pattern) {
		return nil, false
	}
	tail := path[len(path)-len(pattern):]

	params := map[string]string{}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			params[seg[1:len(seg)-1]] = tail[i]
			continue
		}
		if seg != tail[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
