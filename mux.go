package res

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Methods describes the handlers of a single resource: for every supported
// HTTP method (verb) exactly one handler is defined.
type Methods map[string]Handler

// Paths associates path patterns with resource handlers.
type Paths map[string]Methods

// ServeMux is an HTTP request multiplexer. It matches the URL of each incoming
// request against a list of registered patterns and calls the handler defined
// for the request method of the pattern that matches the URL.
//
// You can use named path elements:
//	/user/:name
//	/user/:name/files
//	/user/:name/files/*filename
//
// If only the pattern with a trailing slash is registered and a request names
// the path without it, ServeMux redirects that request to the path with the
// trailing slash.
type ServeMux struct {
	Headers     map[string]string // additional http headers added to every response
	BasePath    string            // path prefix common to all patterns
	Coder       Coder             // overrides the global Encoder when set
	Logger      *slog.Logger      // request logger
	NotCompress bool              // disallow compression of the response
	routers     map[string]*router
}

// Handle registers the handler for the given method and pattern. In addition
// to Handler, http.Handler and http.HandlerFunc are accepted; named path
// parameters are exposed to standard handlers through the URL query.
//
// Handle panics if the handler is of an unsupported type or the pattern
// conflicts with an already registered one.
func (mux *ServeMux) Handle(method, pattern string, handlr interface{}) {
	if handlr == nil {
		panic("res: nil handler")
	}
	if method == "" {
		method = "GET"
	}
	if mux.routers == nil {
		// typically no more than 9 of HTTP methods
		mux.routers = make(map[string]*router, 9)
	}
	method = strings.ToUpper(method)
	r := mux.routers[method]
	if r == nil {
		r = new(router)
		mux.routers[method] = r
	}
	if err := r.add(pattern, handler(handlr)); err != nil {
		panic(err) // the handler does not suit us for some reason
	}
}

// Handles registers several resources at once: for every path pattern the
// handlers of all its methods.
func (mux *ServeMux) Handles(paths Paths) {
	for pattern, methods := range paths {
		for method, handler := range methods {
			mux.Handle(method, pattern, handler)
		}
	}
}

// ServeHTTP implements the http.Handler interface.
func (mux *ServeMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		started = time.Now()
		code    int
		err     error
	)
	// every response carries a request id, either the one the client sent or
	// a generated one
	rid := r.Header.Get("X-Request-ID")
	if rid == "" {
		rid = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", rid)
	// log the request on return
	if mux.Logger != nil {
		defer func() {
			logger := mux.Logger.With(
				slog.String("id", rid),
				slog.String("ip", RealIP(r)),
				slog.Int("code", code),
				slog.Duration("duration", time.Since(started)),
			)
			msg := fmt.Sprintf("%s %s", r.Method, r.RequestURI)
			switch {
			case err != nil:
				logger.Error(msg, slog.String("error", err.Error()))
			case code < 400:
				logger.Info(msg)
			case code < 500:
				logger.Warn(msg)
			default:
				logger.Error(msg)
			}
		}()
	}

	// add global HTTP headers
	if len(mux.Headers) > 0 {
		responseHeader := w.Header()
		for key, value := range mux.Headers {
			responseHeader.Set(key, value)
		}
	}

	// wrap the response to support compression and HEAD requests
	cw := newCompressWriter(w, r)
	cw.enabled = !mux.NotCompress
	defer cw.Close()

	c := newContext(cw, r)
	defer c.close()
	if mux.Coder != nil {
		c.coder = mux.Coder
	}

	// cut the base path
	urlPath := r.URL.Path
	if mux.BasePath != "" {
		if !strings.HasPrefix(urlPath, mux.BasePath) {
			err = c.Send(ErrNotFound)
			code = c.Code()
			return
		}
		urlPath = strings.TrimPrefix(urlPath, mux.BasePath)
		if urlPath == "" {
			urlPath = "/"
		}
	}

	// lookup handler for method and path
	routers := mux.routers[r.Method]
	var handler interface{}
	if routers != nil {
		handler, c.Params = routers.lookup(urlPath)
	}
	if handler == nil && r.Method == "HEAD" {
		// HEAD requests fall back to the GET handler, the response body is
		// dropped by the writer
		if routers := mux.routers["GET"]; routers != nil {
			handler, c.Params = routers.lookup(urlPath)
		}
	}
	if handler != nil {
		err = serve(handler.(Handler), c)
		if err != nil {
			// try to send the error, unless the handler already responded
			c.Send(err)
		} else if !c.sended {
			c.Send(nil)
		}
		code = c.Code()
		return
	}

	// try to add a slash at the end
	if routers != nil && !strings.HasSuffix(urlPath, "/") {
		if handler, _ := routers.lookup(urlPath + "/"); handler != nil {
			http.Redirect(cw, r, r.URL.Path+"/", http.StatusMovedPermanently)
			code = http.StatusMovedPermanently
			return
		}
	}

	// the handler for the request method is not found: check the others
	methods := make([]string, 0, len(mux.routers))
	for method, routers := range mux.routers {
		if handler, _ := routers.lookup(urlPath); handler != nil {
			methods = append(methods, method)
		}
	}
	if len(methods) > 0 {
		sort.Strings(methods)
		cw.Header().Set("Allow", strings.Join(methods, ", "))
		err = c.Send(ErrMethodNotAllowed)
		code = c.Code()
		return
	}

	// the path is not registered for any method
	err = c.Send(ErrNotFound)
	code = c.Code()
}

// serve executes the handler, converting a panic into the response error.
func serve(h Handler, c *Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h(c)
}
