package controllers

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
)

// StaticFilesController serves the embedded assets of every module. Hashed
// names get hashfs's immutable caching; plain names follow cacheHeaders.
type StaticFilesController struct {
	fsInstances []*hashfs.FS
}

func NewStaticFilesController(fsInstances []*hashfs.FS) application.Controller {
	return &StaticFilesController{fsInstances: fsInstances}
}

func (s *StaticFilesController) Key() string {
	return "/assets"
}

// cacheHeaders lets unhashed assets be cached for an hour in production and
// never during development, where they change on every edit.
func cacheHeaders(env string) map[string]string {
	if env == configuration.Production {
		return map[string]string{"Cache-Control": "public, max-age=3600"}
	}
	return map[string]string{
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Pragma":        "no-cache",
		"Expires":       "0",
	}
}

func (s *StaticFilesController) lookup(name string) (*hashfs.FS, bool) {
	for _, fsys := range s.fsInstances {
		base, _ := fsys.ParseName(name)
		if _, err := fs.Stat(fsys, base); err == nil {
			return fsys, true
		}
	}
	return nil, false
}

func (s *StaticFilesController) Register(r *mux.Router) {
	headers := cacheHeaders(configuration.Use().GoAppEnvironment)
	r.PathPrefix("/assets/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/assets/")
		fsys, ok := s.lookup(name)
		if !ok {
			http.NotFound(w, r)
			return
		}
		if _, hash := fsys.ParseName(name); hash == "" {
			for k, v := range headers {
				w.Header().Set(k, v)
			}
		}
		http.StripPrefix("/assets/", hashfs.FileServer(fsys)).ServeHTTP(w, r)
	})
}
