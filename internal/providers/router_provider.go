package providers

import (
	"net/http"
	"shoutd/internal/structures"
)

// ViewRouterInterface collects the read-only views served next to /health.
// Nothing over HTTP can submit or change settings, so a view is the only
// kind of route there is.
type ViewRouterInterface interface {
	View(path string, handler http.Handler)
	Views() []structures.Route
}

type ViewRouter struct {
	views []structures.Route
}

func NewViewRouter() ViewRouterInterface {
	return &ViewRouter{}
}

// View registers a GET (and HEAD) handler for path; other methods get 405.
func (vr *ViewRouter) View(path string, handler http.Handler) {
	vr.views = append(vr.views, structures.Route{Url: path, Handler: readOnly(handler)})
}

func (vr *ViewRouter) Views() []structures.Route {
	return vr.views
}

func readOnly(view http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			view.ServeHTTP(w, r)
		default:
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}
