package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/processor"
	"github.com/handballito/handballito-time/internal/pubsub"
)

// pushMessage is the envelope Pub/Sub push subscriptions POST to us.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}

// decodePush unwraps a push request into the raw message payload. It writes
// the error response itself and returns false on failure.
func decodePush(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return nil, false
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	var msg pushMessage
	if err := json.Unmarshal(bodyBytes, &msg); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return nil, false
	}

	rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return nil, false
	}
	return rawData, true
}

// MatchRecordedHandler announces a match delivered by the match-recorded
// subscription. A failed announcement answers 500 so Pub/Sub redelivers it.
func MatchRecordedHandler(processor *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := decodePush(w, r)
		if !ok {
			return
		}
		var event league.MatchRecorded
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if err := processor.AnnounceMatch(r.Context(), event, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to announce match", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to announce match", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
