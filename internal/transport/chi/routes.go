package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerOptions configures route registration.
type ServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions registers the API routes on the base router.
func HandlerWithOptions(s *Server, opts ServerOptions) http.Handler {
	r := opts.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if opts.ErrorHandlerFunc == nil {
		opts.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		}
	}
	wrapper := &serverWrapper{server: s, errorHandler: opts.ErrorHandlerFunc}

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/profiles", s.ListProfiles)
		r.Get("/profiles/{name}", wrapper.GetProfile)
		r.Get("/profiles/{name}/getfeature", wrapper.ProfileGetFeature)
		r.Post("/getfeature", wrapper.CombineGetFeature)
		r.Post("/filter", s.BuildFilter)
	})

	return r
}

// Handler registers the API routes on a new chi router.
func Handler(s *Server) http.Handler {
	return HandlerWithOptions(s, ServerOptions{})
}

// serverWrapper binds path and query parameters before calling the server.
type serverWrapper struct {
	server       *Server
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (sw *serverWrapper) GetProfile(w http.ResponseWriter, r *http.Request) {
	name, ok := sw.bindName(w, r)
	if !ok {
		return
	}
	sw.server.GetProfile(w, r, name)
}

func (sw *serverWrapper) ProfileGetFeature(w http.ResponseWriter, r *http.Request) {
	name, ok := sw.bindName(w, r)
	if !ok {
		return
	}
	params, ok := sw.bindGetFeatureParams(w, r)
	if !ok {
		return
	}
	sw.server.ProfileGetFeature(w, r, name, params)
}

func (sw *serverWrapper) CombineGetFeature(w http.ResponseWriter, r *http.Request) {
	var params CombineGetFeatureParams
	if !sw.bindPretty(w, r, &params.Pretty) {
		return
	}
	sw.server.CombineGetFeature(w, r, params)
}

func (sw *serverWrapper) bindName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "name", chi.URLParam(r, "name"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		sw.errorHandler(w, r, fmt.Errorf("invalid format for parameter name: %w", err))
		return "", false
	}
	return name, true
}

func (sw *serverWrapper) bindGetFeatureParams(w http.ResponseWriter, r *http.Request) (GetFeatureParams, bool) {
	var params GetFeatureParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "term", query, &params.Term); err != nil {
		sw.errorHandler(w, r, fmt.Errorf("invalid format for parameter term: %w", err))
		return params, false
	}
	if !sw.bindPretty(w, r, &params.Pretty) {
		return params, false
	}
	return params, true
}

func (sw *serverWrapper) bindPretty(w http.ResponseWriter, r *http.Request, dest **bool) bool {
	if err := runtime.BindQueryParameter("form", true, false, "pretty", r.URL.Query(), dest); err != nil {
		sw.errorHandler(w, r, fmt.Errorf("invalid format for parameter pretty: %w", err))
		return false
	}
	return true
}
