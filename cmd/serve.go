package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/pianosight/abc"
	"github.com/jsphweid/pianosight/constants"
	"github.com/jsphweid/pianosight/file"
	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/midi"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/notation"
	"github.com/jsphweid/pianosight/sample"
	"github.com/jsphweid/pianosight/store"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var scores *store.Store

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves generation over HTTP",
	Long: `Serves generation over HTTP. Generated scores are kept under
$PIANOSIGHT_OUT/scores and can be fetched as JSON, ABC, MIDI or layout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadServeFiles(filepath.Join(constants.GetOutDir(), "scores")); err != nil {
			return err
		}
		defer scores.Flush()

		addr := constants.GetAddr()
		slog.Info("listening", "addr", addr, "stored", scores.Len())
		return http.ListenAndServe(addr, Router())
	},
}

// LoadServeFiles opens the score store in dir. An empty dir keeps scores
// in memory only.
func LoadServeFiles(dir string) error {
	s, err := store.Open(dir, constants.StoreFlushDelay)
	if err != nil {
		return fmt.Errorf("could not open score store: %w", err)
	}
	scores = s
	return nil
}

func Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/generate", HandleGenerate).Methods("POST")
	router.HandleFunc("/keys", HandleKeys).Methods("GET")
	router.HandleFunc("/scores", HandleList).Methods("GET")
	router.HandleFunc("/scores/{id}", HandleScore).Methods("GET")
	router.HandleFunc("/scores/{id}/abc", HandleABC).Methods("GET")
	router.HandleFunc("/scores/{id}/midi", HandleMIDI).Methods("GET")
	router.HandleFunc("/scores/{id}/layout", HandleLayout).Methods("GET")
	router.HandleFunc("/scores/{id}/preview", HandlePreview).Methods("GET")
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}

	g := generate(cfg, req)
	id, err := scores.Put(store.Entry{
		Seed:     g.Seed,
		Created:  time.Now().UTC(),
		Warnings: g.Warnings,
		Score:    g.Score,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, model.GenerateResponse{
		ID:       id,
		Seed:     g.Seed,
		Warnings: g.Warnings,
		Score:    g.Score,
	})
}

func HandleKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, key.Supported)
}

func HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scores.List())
}

// entry looks up the {id} of r, replying 404 when it is unknown.
func entry(w http.ResponseWriter, r *http.Request) (store.Entry, bool) {
	e, err := scores.Get(mux.Vars(r)["id"])
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
		return e, false
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return e, false
	}
	return e, true
}

func HandleScore(w http.ResponseWriter, r *http.Request) {
	e, ok := entry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.GenerateResponse{
		ID:       e.ID,
		Seed:     e.Seed,
		Warnings: e.Warnings,
		Score:    e.Score,
	})
}

func HandleABC(w http.ResponseWriter, r *http.Request) {
	e, ok := entry(w, r)
	if !ok {
		return
	}
	text, err := abc.Format(abc.Tune{Number: 1, Title: title(e.Score), Score: e.Score})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.abc; charset=utf-8")
	io.WriteString(w, text)
}

// bpm reads the tempo query parameter, defaulting to the config tempo.
func bpm(r *http.Request) (float64, error) {
	q := r.URL.Query().Get("bpm")
	if q == "" {
		return cfg.Defaults.BPM, nil
	}
	v, err := strconv.ParseFloat(q, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid bpm %q", q)
	}
	return v, nil
}

func writeMIDI(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".mid"))
	w.Write(data)
}

func HandleMIDI(w http.ResponseWriter, r *http.Request) {
	e, ok := entry(w, r)
	if !ok {
		return
	}
	tempo, err := bpm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := midi.Write(&buf, e.Score, tempo); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeMIDI(w, file.ExportName(e.Score, tempo), buf.Bytes())
}

func HandleLayout(w http.ResponseWriter, r *http.Request) {
	e, ok := entry(w, r)
	if !ok {
		return
	}
	layout, err := notation.Build(e.Score)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func measureParam(r *http.Request, name string, fallback int) (int, error) {
	q := r.URL.Query().Get(name)
	if q == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(q)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, q)
	}
	return v, nil
}

// HandlePreview returns the MIDI of measures [from, to), the first two
// measures by default.
func HandlePreview(w http.ResponseWriter, r *http.Request) {
	e, ok := entry(w, r)
	if !ok {
		return
	}
	n := e.Score.NumMeasures()
	tempo, err := bpm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	from, err := measureParam(r, "from", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := measureParam(r, "to", min(from+2, n))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if from < 0 || to > n || from >= to {
		writeError(w, http.StatusBadRequest, fmt.Errorf("measures [%d, %d) outside [0, %d)", from, to, n))
		return
	}

	full, err := midi.Build(e.Score, tempo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	perMeasure := uint32(e.Score.TimeSignature.Budget() * midi.TicksPerEighth)
	excerpt, err := sample.Measures(full, perMeasure, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if _, err := excerpt.WriteTo(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeMIDI(w, fmt.Sprintf("%s_m%d-%d", file.ExportName(e.Score, tempo), from+1, to), buf.Bytes())
}
