package handlers

import (
	"net/http"

	"github.com/handballito/handballito-time/internal/processor"
)

type ingestRequest struct {
	Text string `json:"text" validate:"required"`
}

// IngestTextHandler records a match from a scoreboard report posted as JSON.
func IngestTextHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ingestRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}
		dryRun := IsDryRunFromContext(r)
		result, err := processor.IngestReport(r.Context(), req.Text, dryRun)
		if err != nil {
			writeError(w, err)
			return
		}
		status := http.StatusCreated
		if dryRun {
			status = http.StatusOK
		}
		writeJSON(w, status, result)
	}
}
