package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/notifier"
	"github.com/handballito/handballito-time/internal/processor"
	"github.com/handballito/handballito-time/internal/stats"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// respondWithFormatted writes the output of a notifier Format call.
func respondWithFormatted(w http.ResponseWriter, msg any, err error) {
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		log.Error("Failed to format Slack response", "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

// commandText returns the trimmed text argument of a slash command.
func commandText(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return "", false
	}
	return strings.TrimSpace(r.FormValue("text")), true
}

// MatchCommandHandler records the scoreboard report passed as the text of the
// /match command and replies with the confirmation.
func MatchCommandHandler(processor *processor.Processor, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, ok := commandText(w, r)
		if !ok {
			return
		}
		if text == "" {
			http.Error(w, "A scoreboard report is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received match command", "user", r.FormValue("user_name"))
		result, err := processor.IngestReport(r.Context(), text, IsDryRunFromContext(r))
		if err != nil {
			msg, ferr := notifier.FormatErrorResponse(err)
			respondWithFormatted(w, msg, ferr)
			return
		}
		msg, err := notifier.FormatIngestResponse(result)
		respondWithFormatted(w, msg, err)
	}
}

func LeaderboardCommandHandler(svc *stats.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, err := svc.Leaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to compute leaderboard", "error", err)
			return
		}
		msg, err := notifier.FormatLeaderboardResponse(lb)
		respondWithFormatted(w, msg, err)
	}
}

func MatchStatsCommandHandler(svc *stats.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := svc.MatchStats(r.Context())
		if err != nil {
			http.Error(w, "Failed to get match stats", http.StatusInternalServerError)
			log.Error("Failed to compute match stats", "error", err)
			return
		}
		msg, err := notifier.FormatMatchStatsResponse(ms)
		respondWithFormatted(w, msg, err)
	}
}

func PlayerStatsCommandHandler(svc *stats.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerName, ok := commandText(w, r)
		if !ok {
			return
		}
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)
		ps, err := svc.PlayerStatsByName(r.Context(), playerName)
		var msg any
		switch {
		case league.IsNotFound(err):
			log.Warn("Could not find player stats", "player", playerName, "error", err)
			msg, err = notifier.FormatPlayerNotFoundResponse(playerName)
		case err != nil:
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to compute player stats", "error", err)
			return
		default:
			msg, err = notifier.FormatPlayerStatsResponse(ps, playerName)
		}
		respondWithFormatted(w, msg, err)
	}
}
