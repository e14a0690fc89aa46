package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/resolver"
)

type addPlayerRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type locationRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=200"`
}

type addMatchRequest struct {
	Date           string   `json:"date" validate:"required"`
	LocationID     string   `json:"location_id" validate:"required"`
	WhitePlayerIDs []string `json:"white_player_ids" validate:"required,min=1,dive,required"`
	BlackPlayerIDs []string `json:"black_player_ids" validate:"required,min=1,dive,required"`
	Winner         string   `json:"winner,omitempty" validate:"omitempty,oneof=White Black"`
}

type updateMatchRequest struct {
	Date           string   `json:"date" validate:"required"`
	LocationID     *string  `json:"location_id,omitempty" validate:"omitempty,min=1"`
	WinnerTeamID   *string  `json:"winner_team_id,omitempty" validate:"omitempty,min=1"`
	WhitePlayerIDs []string `json:"white_player_ids" validate:"required,min=1,dive,required"`
	BlackPlayerIDs []string `json:"black_player_ids" validate:"required,min=1,dive,required"`
}

func ListPlayersHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.ListPlayers(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func GetPlayerHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := store.GetPlayer(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func AddPlayerHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPlayerRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}
		player, err := store.AddPlayer(r.Context(), req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func ListLocationsHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations, err := store.ListLocations(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, locations)
	}
}

func GetLocationHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location, err := store.GetLocation(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, location)
	}
}

func AddLocationHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req locationRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}
		location, err := store.AddLocation(r.Context(), req.Name, req.Address)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, location)
	}
}

func UpdateLocationHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req locationRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}
		location, err := store.UpdateLocation(r.Context(), r.PathValue("id"), req.Name, req.Address)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, location)
	}
}

func ListMatchesHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.ListMatches(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func GetMatchHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := store.GetMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func AddMatchHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addMatchRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}
		date, err := resolver.ParseDate(req.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		match, err := store.AddMatch(r.Context(), league.NewMatch{
			Date:           date,
			LocationID:     req.LocationID,
			WhitePlayerIDs: req.WhitePlayerIDs,
			BlackPlayerIDs: req.BlackPlayerIDs,
			Winner:         league.Side(req.Winner),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		log.Info("Match added", "matchID", match.ID)
		writeJSON(w, http.StatusCreated, match)
	}
}

func UpdateMatchHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMatchRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}
		date, err := resolver.ParseDate(req.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		match, err := store.UpdateMatch(r.Context(), r.PathValue("id"), league.MatchUpdate{
			Date:           date,
			LocationID:     req.LocationID,
			WinnerTeamID:   req.WinnerTeamID,
			WhitePlayerIDs: req.WhitePlayerIDs,
			BlackPlayerIDs: req.BlackPlayerIDs,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}
