package res

import (
	"compress/gzip"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
)

// CompressMimeTypes contains Media-Type patterns that can be compressed.
var CompressMimeTypes = map[string][]string{
	"text":        {"*"},
	"application": {"json", "*+json", "xml", "*+xml", "javascript", "x-javascript", "x-font-ttf"},
	"image":       {"*+xml", "bmp", "vnd.microsoft.icon", "x-icon"},
	"audio":       {"wave", "aiff", "basic", "x-wav"},
	"font":        {"eot", "opentype"},
}

// AddCompressMimeType registers a new type for compression.
func AddCompressMimeType(maintype, subtypePattern string) {
	CompressMimeTypes[maintype] = append(CompressMimeTypes[maintype],
		subtypePattern)
}

// isCompress returns true if contentType falls under the definition of
// patterns for supporting compression of data types.
func isCompress(contentType string) bool {
	i := strings.Index(contentType, ";")
	if i == -1 {
		i = len(contentType)
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType[:i]))
	i = strings.Index(contentType, "/")
	if i == -1 || i == len(contentType)-1 {
		return false
	}
	subtype := contentType[i+1:]
	for _, pattern := range CompressMimeTypes[contentType[:i]] {
		ok, err := path.Match(pattern, subtype)
		if err != nil {
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// compressWriter implements http.ResponseWriter and transparently compresses
// the response when the client accepts gzip and the Content-Type of the
// response falls under CompressMimeTypes. The decision is made when the
// response header is written, so the Content-Type set by the handler is taken
// into account.
type compressWriter struct {
	http.ResponseWriter
	request     *http.Request
	writer      io.Writer
	code        int
	enabled     bool
	wroteHeader bool
	compressed  bool
}

func newCompressWriter(w http.ResponseWriter, r *http.Request) *compressWriter {
	return &compressWriter{
		ResponseWriter: w,
		request:        r,
		writer:         w,
		code:           http.StatusOK,
		enabled:        true,
	}
}

// WriteHeader sets the compression headers, if applicable, and writes the
// response status.
func (cw *compressWriter) WriteHeader(code int) {
	if cw.wroteHeader {
		return
	}
	cw.code = code
	headers := cw.Header()
	if cw.enabled &&
		strings.Contains(cw.request.Header.Get("Accept-Encoding"), "gzip") &&
		isCompress(headers.Get("Content-Type")) {
		headers.Add("Vary", "Accept-Encoding")
		headers.Set("Content-Encoding", "gzip")
		headers.Del("Content-Length")
		if cw.request.Method != "HEAD" {
			gzw := gzips.Get().(*gzip.Writer)
			gzw.Reset(cw.ResponseWriter)
			cw.writer = gzw
			cw.compressed = true
		}
	}
	cw.wroteHeader = true
	cw.ResponseWriter.WriteHeader(code)
}

// Write is responsible for returning data in response to the request. Nothing
// is written on HEAD requests.
func (cw *compressWriter) Write(data []byte) (int, error) {
	if !cw.wroteHeader {
		if cw.Header().Get("Content-Type") == "" {
			cw.Header().Set("Content-Type", http.DetectContentType(data))
		}
		cw.WriteHeader(cw.code)
	}
	if cw.request.Method == "HEAD" {
		return len(data), nil
	}
	return cw.writer.Write(data)
}

// Flush supports the http.Flusher interface.
func (cw *compressWriter) Flush() {
	if !cw.wroteHeader {
		cw.WriteHeader(cw.code)
	}
	if gzw, ok := cw.writer.(*gzip.Writer); ok {
		gzw.Flush()
	}
	if flusher, ok := cw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Close terminates the output of the response and returns the gzip.Writer to
// the pool if it has been used.
func (cw *compressWriter) Close() {
	if gzw, ok := cw.writer.(*gzip.Writer); ok {
		gzw.Close()
		gzips.Put(gzw)
		cw.writer = cw.ResponseWriter
	}
}

// gzips contains a pool of gzip.Writer.
var gzips = sync.Pool{New: func() interface{} { return gzip.NewWriter(nil) }}
