package main

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"github.com/mbareford/io-calltree-viewer/internal/calltree"
	"github.com/mbareford/io-calltree-viewer/internal/craypat"
	"github.com/mbareford/io-calltree-viewer/internal/flameplot"
	"github.com/mbareford/io-calltree-viewer/internal/httputil"
)

type (
	GetReportsResponse struct {
		Reports []string `json:"reports"`
	}

	GetCallTreeResponse struct {
		Report   string           `json:"report"`
		LevelMin int              `json:"level_min"`
		LevelMax int              `json:"level_max"`
		CallsMin float64          `json:"calls_min"`
		CallsMax float64          `json:"calls_max"`
		Nodes    []*calltree.Node `json:"nodes"`
	}
)

var reportExtensions = map[string]struct{}{
	".out": {},
	".rpt": {},
	".txt": {},
}

func (e *environment) getReports(w http.ResponseWriter, _ *http.Request) {
	entries, err := os.ReadDir(e.config.ReportsDir)
	if err != nil {
		log.Err(err).Str("reports_dir", e.config.ReportsDir).Msg("reports: error listing the reports directory")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	resp := GetReportsResponse{Reports: []string{}}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := reportExtensions[filepath.Ext(entry.Name())]; ok {
			resp.Reports = append(resp.Reports, entry.Name())
		}
	}
	writeJSON(w, resp)
}

// importReport runs the CrayPAT import for the report named in the path,
// taking the root function from the "root" query parameter and the table
// title from "table" when given. It writes the error response itself and
// returns nil when the import cannot be served.
func (e *environment) importReport(w http.ResponseWriter, r *http.Request) (*calltree.CallTree, string, string) {
	ps := httprouter.ParamsFromContext(r.Context())
	report := filepath.Base(ps.ByName("report"))

	params, logger, ok := httputil.GetRequiredQueryParameters(w, r, "root")
	if !ok {
		return nil, "", ""
	}
	rootFunc := params["root"]

	tableTitle := r.URL.Query().Get("table")
	if tableTitle == "" {
		tableTitle = e.config.TableTitle
	}

	logger = logger.With().Str("report", report).Str("table", tableTitle).Logger()

	ct, err := craypat.Import(filepath.Join(e.config.ReportsDir, report), tableTitle, rootFunc)
	switch {
	case err == nil:
		return ct, report, rootFunc
	case errors.Is(err, os.ErrNotExist):
		http.Error(w, "no such report", http.StatusNotFound)
	case errors.Is(err, craypat.ErrTableNotFound), errors.Is(err, craypat.ErrRootFuncNotFound):
		logger.Warn().Err(err).Msg("report: marker not found in report")
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Err(err).Msg("report: error importing the report")
		w.WriteHeader(http.StatusInternalServerError)
	}
	return nil, "", ""
}

func (e *environment) getCallTree(w http.ResponseWriter, r *http.Request) {
	ct, report, _ := e.importReport(w, r)
	if ct == nil {
		return
	}
	writeJSON(w, GetCallTreeResponse{
		Report:   report,
		LevelMin: ct.LevelMin,
		LevelMax: ct.LevelMax,
		CallsMin: ct.CallsMin,
		CallsMax: ct.CallsMax,
		Nodes:    ct.Traverse(ct.RootID, calltree.BreadthFirst),
	})
}

func (e *environment) getFlamePlot(w http.ResponseWriter, r *http.Request) {
	ct, report, rootFunc := e.importReport(w, r)
	if ct == nil {
		return
	}
	opts := flameplot.Options{
		ColorByCalls: r.URL.Query().Get("color") == "calls",
	}
	title := strings.TrimSuffix(report, filepath.Ext(report)) + " - " + rootFunc
	writeJSON(w, flameplot.Build(ct, title, opts))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := gojson.Marshal(v)
	if err != nil {
		log.Err(err).Msg("error marshaling response to json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
