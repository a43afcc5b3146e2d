// Package web serves the generated store locator site over HTTP.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// GetServer returns an http.Server that serves the generated site rooted at
// dir on the given filesystem. Only files below dir are reachable.
func GetServer(addr string, fs afero.Fs, dir string, logger logrus.FieldLogger) *http.Server {
	httpFs := afero.NewHttpFs(afero.NewBasePathFs(fs, dir))
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(httpFs.Dir("/")))

	return &http.Server{
		Addr:              addr,
		Handler:           withLoggingHandler(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run serves until the context is canceled, then shuts the server down
// gracefully.
func Run(ctx context.Context, srv *http.Server, logger logrus.FieldLogger) error {
	errC := make(chan error, 1)
	go func() {
		errC <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("could not shut the server down cleanly")
		}
		<-errC
		return nil
	case err := <-errC:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

type wrappedResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *wrappedResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// withLoggingHandler returns the middleware which logs response status for
// every request.
func withLoggingHandler(l logrus.FieldLogger, next http.Handler) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		wrapped := &wrappedResponseWriter{ResponseWriter: rw, status: 200} // The default status code is 200 if it's not set
		next.ServeHTTP(wrapped, r)
		l.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": wrapped.status,
		}).Debug("served request")
	}
}
