package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// retentionBuffer is how many records the mock device keeps per
// dataset, matching the real device's default buffer size.
const retentionBuffer = 100

// mockDataset holds the retained records of one dataset plus the
// per-caller delivery cursors.
type mockDataset struct {
	records []map[string]any // oldest first, capped at retentionBuffer
	total   int              // records ever produced, for cursor math
	cursors map[string]int   // caller id -> total count already delivered
}

// StartMockOrbServer runs a mock Orb device on addr.
//
// It serves GET /api/v2/datasets/{name}.{format}?id={caller_id} with
// the real device's delivery semantics: an unseen caller id receives
// the whole retained buffer, a known caller id receives only records
// produced since its last successful poll. A new scores_1m record is
// produced every second. Call this in a goroutine before creating the
// client.
func StartMockOrbServer(addr string) {
	var (
		mu       sync.Mutex
		datasets = map[string]*mockDataset{
			"scores_1m": {cursors: make(map[string]int)},
		}
	)

	// produce a fresh record every second
	go func() {
		for range time.Tick(time.Second) {
			mu.Lock()
			ds := datasets["scores_1m"]
			rec := map[string]any{
				"orb_id":      "mock-orb-001",
				"orb_version": "1.4.0",
				"timestamp":   time.Now().UnixMilli(),
				"orb_score":   60 + rand.Float64()*40,
				"lag_avg_us":  5000 + rand.Float64()*20000,
			}
			ds.records = append(ds.records, rec)
			ds.total++
			if len(ds.records) > retentionBuffer {
				ds.records = ds.records[len(ds.records)-retentionBuffer:]
			}
			mu.Unlock()
		}
	}()

	http.HandleFunc("/api/v2/datasets/", func(w http.ResponseWriter, r *http.Request) {
		// path is /api/v2/datasets/{name}.{format}
		rest := strings.TrimPrefix(r.URL.Path, "/api/v2/datasets/")
		name, format, ok := strings.Cut(rest, ".")
		if !ok || (format != "json" && format != "jsonl") {
			writeError(w, http.StatusBadRequest, "bad dataset path")
			return
		}

		callerID := r.URL.Query().Get("id")
		if callerID == "" {
			writeError(w, http.StatusBadRequest, "missing id parameter")
			return
		}

		mu.Lock()
		ds, exists := datasets[name]
		if !exists {
			mu.Unlock()
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown dataset %q", name))
			return
		}

		// deliver everything produced since this caller's cursor,
		// bounded by what is still retained
		cursor := ds.cursors[callerID]
		undelivered := ds.total - cursor
		if undelivered > len(ds.records) {
			undelivered = len(ds.records)
		}
		pending := ds.records[len(ds.records)-undelivered:]
		out := make([]map[string]any, len(pending))
		copy(out, pending)
		ds.cursors[callerID] = ds.total
		mu.Unlock()

		if format == "jsonl" {
			w.Header().Set("Content-Type", "application/x-ndjson")
			enc := json.NewEncoder(w)
			for _, rec := range out {
				if err := enc.Encode(rec); err != nil {
					slog.Error("failed to write record", "error", err)
					return
				}
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("mock server error", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
