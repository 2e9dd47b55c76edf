package registry

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/depscope/depscope/pkg/cache"
	"github.com/depscope/depscope/pkg/depgraph"
	"github.com/depscope/depscope/pkg/httputil"
	"github.com/depscope/depscope/pkg/observability"
)

// AnalysisHandlers exposes the catalog and the graph analyses over HTTP.
// Handlers only format; every result they serve comes out of the core
// engine as structured data.
type AnalysisHandlers struct {
	catalog *Catalog
	reports *cache.Cache[any]
	metrics *observability.Metrics
}

// NewAnalysisHandlers creates the handler set. The metrics receiver may
// be nil when metrics are disabled.
func NewAnalysisHandlers(catalog *Catalog, reports *cache.Cache[any], metrics *observability.Metrics) *AnalysisHandlers {
	if reports == nil {
		reports = cache.New[any](nil)
	}
	return &AnalysisHandlers{
		catalog: catalog,
		reports: reports,
		metrics: metrics,
	}
}

// RegisterRoutes registers all catalog and analysis routes.
func (h *AnalysisHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/manifests", h.registerManifest).Methods("POST")
	router.HandleFunc("/api/v1/manifests", h.listManifests).Methods("GET")
	router.HandleFunc("/api/v1/manifests/{name}/{version}", h.getManifest).Methods("GET")

	router.HandleFunc("/api/v1/graph", h.getGraph).Methods("GET")
	router.HandleFunc("/api/v1/graph/dot", h.getGraphDOT).Methods("GET")

	router.HandleFunc("/api/v1/analysis/build-order", h.getBuildOrder).Methods("GET")
	router.HandleFunc("/api/v1/analysis/cycles", h.getCycles).Methods("GET")
	router.HandleFunc("/api/v1/analysis/conflicts", h.getConflicts).Methods("GET")

	router.HandleFunc("/api/v1/packages/{name}/{version}/dependents", h.getDependents).Methods("GET")
	router.HandleFunc("/api/v1/packages/{name}/{version}/impact", h.getImpact).Methods("GET")
}

// registerManifest handles POST /api/v1/manifests. The body is a YAML
// (or JSON) manifest document.
func (h *AnalysisHandlers) registerManifest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteBadRequest(w, "unable to read request body: "+err.Error())
		return
	}

	manifest, err := ParseManifest(body)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.catalog.Put(manifest); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ManifestsTotal.Set(float64(h.catalog.Len()))
	}
	observability.FromContext(r.Context()).
		WithField("package", manifest.Key()).
		Info("manifest registered")

	httputil.WriteCreated(w, manifest)
}

// listManifests handles GET /api/v1/manifests.
func (h *AnalysisHandlers) listManifests(w http.ResponseWriter, r *http.Request) {
	manifests := h.catalog.List()
	httputil.WriteSuccess(w, map[string]interface{}{
		"manifests": manifests,
		"count":     len(manifests),
	})
}

// getManifest handles GET /api/v1/manifests/{name}/{version}.
func (h *AnalysisHandlers) getManifest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	manifest, err := h.catalog.Get(vars["name"], vars["version"])
	if err != nil {
		if errors.Is(err, ErrManifestNotFound) {
			httputil.WriteNotFound(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, manifest)
}

// getGraph handles GET /api/v1/graph, serving Cytoscape.js elements.
func (h *AnalysisHandlers) getGraph(w http.ResponseWriter, r *http.Request) {
	key := h.catalog.Fingerprint() + ":graph"
	if cached, ok := h.cachedReport(key); ok {
		httputil.WriteSuccess(w, cached)
		return
	}

	g := h.buildGraph()
	cyto := depgraph.NewVisualizer().RenderCytoscape(g)

	h.storeReport(key, cyto)
	httputil.WriteSuccess(w, cyto)
}

// getGraphDOT handles GET /api/v1/graph/dot, serving Graphviz DOT text.
func (h *AnalysisHandlers) getGraphDOT(w http.ResponseWriter, r *http.Request) {
	g := h.buildGraph()
	httputil.WriteText(w, http.StatusOK, depgraph.NewVisualizer().RenderDOT(g))
}

// buildOrderResponse is the successful build-order payload.
type buildOrderResponse struct {
	Order []depgraph.Package `json:"order"`
	Count int                `json:"count"`
}

// getBuildOrder handles GET /api/v1/analysis/build-order. The cycle
// check gates the sort: a cyclic catalog yields 409 with a witness path
// and no order.
func (h *AnalysisHandlers) getBuildOrder(w http.ResponseWriter, r *http.Request) {
	key := h.catalog.Fingerprint() + ":build-order"
	if cached, ok := h.cachedReport(key); ok {
		httputil.WriteSuccess(w, cached)
		return
	}

	g := h.buildGraph()

	start := time.Now()
	cycle := depgraph.NewCycleDetector().FindCycle(g)
	if cycle != nil {
		h.observeAnalysis("cycle_check", "cyclic", start)
		if h.metrics != nil {
			h.metrics.CyclesDetectedTotal.Inc()
		}
		observability.FromContext(r.Context()).
			WithField("cycle", packageKeys(cycle)).
			Warn("build order infeasible")
		httputil.WriteJSON(w, http.StatusConflict, map[string]interface{}{
			"error": "dependency cycle detected, build order is infeasible",
			"cycle": packageKeys(cycle),
		})
		return
	}
	h.observeAnalysis("cycle_check", "acyclic", start)

	start = time.Now()
	order, err := depgraph.NewTopologicalSorter().Sort(g)
	if err != nil {
		// The detector said acyclic; the sorter must agree.
		h.observeAnalysis("toposort", "error", start)
		httputil.WriteInternalError(w, err)
		return
	}
	h.observeAnalysis("toposort", "ok", start)

	response := buildOrderResponse{Order: order, Count: len(order)}
	h.storeReport(key, response)
	httputil.WriteSuccess(w, response)
}

// getCycles handles GET /api/v1/analysis/cycles.
func (h *AnalysisHandlers) getCycles(w http.ResponseWriter, r *http.Request) {
	g := h.buildGraph()

	start := time.Now()
	cycle := depgraph.NewCycleDetector().FindCycle(g)
	outcome := "acyclic"
	if cycle != nil {
		outcome = "cyclic"
		if h.metrics != nil {
			h.metrics.CyclesDetectedTotal.Inc()
		}
	}
	h.observeAnalysis("cycle_check", outcome, start)

	response := map[string]interface{}{
		"cyclic": cycle != nil,
	}
	if cycle != nil {
		response["cycle"] = packageKeys(cycle)
	}
	httputil.WriteSuccess(w, response)
}

// getConflicts handles GET /api/v1/analysis/conflicts.
func (h *AnalysisHandlers) getConflicts(w http.ResponseWriter, r *http.Request) {
	key := h.catalog.Fingerprint() + ":conflicts"
	if cached, ok := h.cachedReport(key); ok {
		httputil.WriteSuccess(w, cached)
		return
	}

	g := h.buildGraph()

	start := time.Now()
	conflicts := depgraph.NewConflictDetector(nil).Conflicts(g)
	outcome := "clean"
	if len(conflicts) > 0 {
		outcome = "conflicting"
	}
	h.observeAnalysis("conflict_check", outcome, start)

	response := map[string]interface{}{
		"conflict":  len(conflicts) > 0,
		"conflicts": conflicts,
		"count":     len(conflicts),
	}
	h.storeReport(key, response)
	httputil.WriteSuccess(w, response)
}

// getDependents handles GET /api/v1/packages/{name}/{version}/dependents:
// the direct, single-hop reverse lookup.
func (h *AnalysisHandlers) getDependents(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	target := depgraph.Package{Name: vars["name"], Version: vars["version"]}

	g := h.buildGraph()
	if !g.Contains(target) {
		httputil.WriteNotFound(w, target.Key()+": package not found")
		return
	}

	start := time.Now()
	dependents := depgraph.NewImpactAnalyzer().Dependents(g, target)
	h.observeAnalysis("impact", "ok", start)

	httputil.WriteSuccess(w, map[string]interface{}{
		"package":    target,
		"dependents": dependents,
		"count":      len(dependents),
	})
}

// getImpact handles GET /api/v1/packages/{name}/{version}/impact: direct
// plus transitive blast radius.
func (h *AnalysisHandlers) getImpact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	target := depgraph.Package{Name: vars["name"], Version: vars["version"]}

	g := h.buildGraph()
	if !g.Contains(target) {
		httputil.WriteNotFound(w, target.Key()+": package not found")
		return
	}

	start := time.Now()
	report := depgraph.NewImpactAnalyzer().Impact(g, target)
	h.observeAnalysis("impact", "ok", start)

	httputil.WriteSuccess(w, report)
}

func (h *AnalysisHandlers) buildGraph() *depgraph.Graph {
	g := h.catalog.BuildGraph()
	if h.metrics != nil {
		h.metrics.GraphBuildsTotal.Inc()
		h.metrics.GraphPackages.Set(float64(g.Len()))
		h.metrics.GraphEdges.Set(float64(len(g.Edges())))
	}
	return g
}

func (h *AnalysisHandlers) cachedReport(key string) (any, bool) {
	value, ok := h.reports.Get(key)
	if h.metrics != nil {
		if ok {
			h.metrics.CacheHitsTotal.Inc()
		} else {
			h.metrics.CacheMissesTotal.Inc()
		}
	}
	return value, ok
}

func (h *AnalysisHandlers) storeReport(key string, value any) {
	h.reports.Set(key, value)
}

func (h *AnalysisHandlers) observeAnalysis(analysis, outcome string, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveAnalysis(analysis, outcome, time.Since(start))
	}
}

func packageKeys(pkgs []depgraph.Package) []string {
	keys := make([]string, len(pkgs))
	for i, p := range pkgs {
		keys[i] = p.Key()
	}
	return keys
}
