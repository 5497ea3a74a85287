package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"service-insights-go/internal/analysis"
	"service-insights-go/internal/config"
	"service-insights-go/internal/dataset"
	"service-insights-go/internal/fetch"
	"service-insights-go/internal/logger"
	"service-insights-go/internal/progress"
	"service-insights-go/internal/types"
)

// analyzeResponse is the full payload handed to the display surface.
type analyzeResponse struct {
	RunID    string           `json:"run_id"`
	Summary  dataset.Summary  `json:"summary"`
	Results  types.Results    `json:"results"`
	Progress []progress.Event `json:"progress"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func main() {
	_ = godotenv.Load() // loads .env

	cfg, err := config.Load()
	if err != nil {
		logger.New().WithError(err).Fatal("invalid configuration")
	}
	log := logger.Configure(cfg.Logging.Level, cfg.Logging.JSON)
	log.WithField("service", "service-insights-go").Info("starting service")

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		log.WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// analyze endpoint: three uploaded tables in one multipart request
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "analyze")
		reqLog.Info("analyze request received")

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(cfg.Server.MaxUploadBytes); err != nil {
			reqLog.WithError(err).Warn("bad multipart form")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad multipart form"})
			return
		}

		inputs := map[string]*dataset.Input{}
		for _, field := range []string{"personal", "tickets", "complaints"} {
			f, hdr, err := r.FormFile(field)
			if err != nil {
				continue // absence surfaces as MissingInputError below
			}
			defer f.Close()
			inputs[field] = &dataset.Input{Name: hdr.Filename, Reader: f}
		}

		runAnalysis(w, reqLog, cfg, inputs["personal"], inputs["tickets"], inputs["complaints"])
	})

	// analyze-remote endpoint: same pipeline over downloaded tables
	mux.HandleFunc("/analyze-remote", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "analyze-remote")
		reqLog.Info("remote analyze request received")

		inputs := map[string]*dataset.Input{}
		for _, field := range []string{"personal", "tickets", "complaints"} {
			url := r.URL.Query().Get(field + "_url")
			if url == "" {
				continue
			}
			body, err := fetch.Table(url)
			if err != nil {
				reqLog.WithError(err).Warn("table download failed")
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: fmt.Sprintf("download %s: %v", field, err)})
				return
			}
			inputs[field] = &dataset.Input{Name: path.Base(url), Reader: bytes.NewReader(body)}
		}

		runAnalysis(w, reqLog, cfg, inputs["personal"], inputs["tickets"], inputs["complaints"])
	})

	// demo endpoint: run the pipeline over the configured local fixtures
	mux.HandleFunc("/demo", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "demo")
		reqLog.Info("demo invoked")

		open := func(p string) *dataset.Input {
			f, err := os.Open(p)
			if err != nil {
				reqLog.WithError(err).Warn("fixture not found")
				return nil
			}
			return &dataset.Input{Name: path.Base(p), Reader: f}
		}
		personal := open(cfg.Demo.PersonalPath)
		tickets := open(cfg.Demo.TicketsPath)
		complaints := open(cfg.Demo.ComplaintsPath)
		for _, in := range []*dataset.Input{personal, tickets, complaints} {
			if in != nil {
				if c, ok := in.Reader.(*os.File); ok {
					defer c.Close()
				}
			}
		}

		runAnalysis(w, reqLog, cfg, personal, tickets, complaints)
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
}

// runAnalysis loads the three tables (fail-fast) and runs the pipeline,
// writing the full response or the mapped error.
func runAnalysis(w http.ResponseWriter, reqLog *logrus.Entry, cfg *config.Config, personal, tickets, complaints *dataset.Input) {
	runID := uuid.New().String()
	reqLog = reqLog.WithField("run_id", runID)
	plog := &progress.Log{}

	start := time.Now()
	tables, err := dataset.LoadTables(personal, tickets, complaints, plog)
	if err != nil {
		plog.Appendf("error: %v", err)
		reqLog.WithField("error", err.Error()).Warn("load failed")
		var missing *dataset.MissingInputError
		var parse *dataset.ParseError
		switch {
		case errors.As(err, &missing):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: missing.Error()})
		case errors.As(err, &parse):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: parse.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	summary := dataset.Summarize(tables)
	results := analysis.Run(tables, cfg.Analysis.SLADays, plog)
	plog.Append("analysis complete, all questions answered - success")

	reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("pipeline finished")
	writeJSON(w, http.StatusOK, analyzeResponse{
		RunID:    runID,
		Summary:  summary,
		Results:  results,
		Progress: plog.Events(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
