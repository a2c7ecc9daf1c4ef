package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/mtse/marketing-engine/internal/auth"
	"github.com/mtse/marketing-engine/internal/decode"
	"github.com/mtse/marketing-engine/internal/engine"
	"github.com/mtse/marketing-engine/internal/fetch"
	"github.com/mtse/marketing-engine/internal/quota"
	"github.com/mtse/marketing-engine/internal/report"
	"github.com/mtse/marketing-engine/internal/store"
)

// Required column sets per analysis mode. The engine takes whatever set the
// caller hands it; these are the modes the API exposes.
var modeColumns = map[string][]string{
	"ads":     {engine.ColCampaign, engine.ColImpressions, engine.ColClicks, engine.ColSpend, engine.ColRevenue},
	"social":  {engine.ColLikes, engine.ColComments, engine.ColShares, engine.ColReach},
	"minimal": {engine.ColCampaign, engine.ColSpend, engine.ColRevenue},
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Username == "" || c.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}
	err := s.auth.Register(r.Context(), c.Username, c.Password, "user", quota.PlanFree)
	if errors.Is(err, store.ErrUserExists) {
		writeError(w, http.StatusConflict, "user already exists")
		return
	}
	if err != nil {
		s.log.Error("register", slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"username": c.Username})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	token, err := s.auth.Login(r.Context(), c.Username, c.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "wrong credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// upload reads the campaign file from the multipart form ("file") or, when a
// "url" field is present instead, fetches it remotely.
func (s *server) upload(r *http.Request) (filename string, content []byte, err error) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return "", nil, fmt.Errorf("parse upload: %w", err)
	}
	if u := r.FormValue("url"); u != "" {
		b, err := fetch.Get(r.Context(), s.client, u, s.cfg.MaxUploadBytes)
		if err != nil {
			return "", nil, fmt.Errorf("fetch %s: %w", u, err)
		}
		return filepath.Base(u), b, nil
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return "", nil, errors.New("file field required")
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes))
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return hdr.Filename, b, nil
}

// analyzeUpload runs the shared decode-normalize-analyze pipeline used by
// the analyze and report endpoints. A text upload comes back with res only.
func (s *server) analyzeUpload(w http.ResponseWriter, r *http.Request) (ds *engine.Dataset, a *engine.Analysis, res *decode.Result, filename string, ok bool) {
	user := auth.UserFrom(r.Context())
	if err := s.meter.Allow(r.Context(), user); err != nil {
		if errors.Is(err, quota.ErrQuotaExceeded) {
			writeError(w, http.StatusTooManyRequests, "plan quota exceeded")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, nil, nil, "", false
	}

	filename, content, err := s.upload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, nil, "", false
	}

	res, err = decode.Decode(filename, content)
	if errors.Is(err, decode.ErrUnsupportedFormat) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file format")
		return nil, nil, nil, "", false
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, nil, "", false
	}
	s.meter.RecordUpload(r.Context(), user, strings.TrimPrefix(filepath.Ext(filename), "."))

	if !res.IsTabular() {
		return nil, nil, res, filename, true
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "ads"
	}
	required, known := modeColumns[mode]
	if !known {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", mode))
		return nil, nil, nil, "", false
	}

	ds, err = engine.NormalizeAndValidate(*res.Table, required)
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":           "missing required columns",
			"missing_columns": verr.Missing,
		})
		return nil, nil, nil, "", false
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, nil, "", false
	}

	start := time.Now()
	a, err = engine.Analyze(ds)
	if errors.Is(err, engine.ErrEmptyDataset) {
		writeError(w, http.StatusUnprocessableEntity, "dataset has no rows")
		return nil, nil, nil, "", false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, nil, "", false
	}
	s.meter.RecordAnalysis(r.Context(), user, string(a.Classification), time.Since(start).Seconds())
	return ds, a, res, filename, true
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	_, a, res, _, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}
	if a == nil {
		words, chars := res.TextStats()
		writeJSON(w, http.StatusOK, map[string]any{
			"type":       "text",
			"word_count": words,
			"char_count": chars,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"type":     "table",
		"analysis": a,
	})
}

func (s *server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Values []float64 `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	next, err := engine.PredictNext(body.Values)
	if errors.Is(err, engine.ErrInsufficientData) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"next": next})
}

func (s *server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	_, a, _, filename, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}
	if a == nil {
		writeError(w, http.StatusUnprocessableEntity, "pdf report needs a tabular upload")
		return
	}
	user := auth.UserFrom(r.Context())
	meta := report.Meta{Platform: s.cfg.PlatformName, Username: user.Name, Filename: filename}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="mtse_report.pdf"`)
	if err := report.WritePDF(w, meta, a); err != nil {
		s.log.Error("pdf report", slog.String("err", err.Error()))
		return
	}
	s.meter.RecordReport(r.Context(), user)
}

func (s *server) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	ds, a, _, _, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}
	if a == nil {
		writeError(w, http.StatusUnprocessableEntity, "csv export needs a tabular upload")
		return
	}
	user := auth.UserFrom(r.Context())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="mtse_metrics.csv"`)
	if err := report.WriteCSV(w, ds, a); err != nil {
		s.log.Error("csv report", slog.String("err", err.Error()))
		return
	}
	s.meter.RecordReport(r.Context(), user)
}

func (s *server) handleUsage(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	usage, err := s.users.GetUsage(r.Context(), user.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plan": user.Plan, "usage": usage})
}

func (s *server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}
