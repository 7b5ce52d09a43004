package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/utils"
)

// compressibleTypes are gzipped for clients that accept it. Excel and PDF
// exports are compressed formats already and are sent as is.
var compressibleTypes = []string{"application/json", "text/plain", "text/csv"}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZip inflates gzip request bodies and compresses text responses.
func withGZip(next http.Handler) http.Handler {
	compress := middleware.Compress(5, compressibleTypes...)
	return inflateRequest(compress(next))
}

func inflateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Body == nil || !strings.Contains(req.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, req)
			return
		}

		gzipReader := gzipReaderPool.Get().(*gzip.Reader)
		if err := gzipReader.Reset(req.Body); err != nil {
			gzipReaderPool.Put(gzipReader)
			logger.FromRequest(req).Warn().Err(err).Str("func", "inflateRequest").Msg("invalid gzip body")
			utils.WriteError(w, "invalid gzip body", "", http.StatusBadRequest)
			return
		}

		req.Body = &pooledReadCloser{Reader: gzipReader, source: req.Body}
		req.Header.Del("Content-Encoding")
		req.ContentLength = -1

		next.ServeHTTP(w, req)
	})
}

// pooledReadCloser returns the gzip reader to the pool on the first Close.
type pooledReadCloser struct {
	*gzip.Reader
	source io.Closer
	once   sync.Once
}

func (r *pooledReadCloser) Close() error {
	r.once.Do(func() {
		r.Reader.Close()
		gzipReaderPool.Put(r.Reader)
	})
	return r.source.Close()
}
