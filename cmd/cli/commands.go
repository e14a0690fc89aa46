package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/output"
	"github.com/handballito/handballito-time/internal/stats"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(countersCmd)

	playersCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(playersCmd)

	addLocationCmd.Flags().String("address", "", "Street address of the venue")
	locationsCmd.AddCommand(addLocationCmd)
	rootCmd.AddCommand(locationsCmd)

	ingestCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and resolve the report without saving anything")
	rootCmd.AddCommand(ingestCmd)

	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(matchStatsCmd)
	rootCmd.AddCommand(playerStatsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRaw("GET", "/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRaw("GET", "/metrics")
	},
}

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Show lifetime ingestion counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		var counters map[string]int
		if ok, err := fetch("GET", "/stats/counters", nil, &counters); !ok {
			return err
		}
		rows := make([][]string, 0, len(counters))
		for k, v := range counters {
			rows = append(rows, []string{k, fmt.Sprint(v)})
		}
		return output.Table(os.Stdout, []string{"Counter", "Value"}, rows)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players on the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		var players []league.Player
		if ok, err := fetch("GET", "/players", nil, &players); !ok {
			return err
		}
		return output.Players(os.Stdout, players)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a player to the roster",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p league.Player
		payload := map[string]string{"name": strings.Join(args, " ")}
		if ok, err := fetch("POST", "/players", payload, &p); !ok {
			return err
		}
		return output.Players(os.Stdout, []league.Player{p})
	},
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the known venues",
	RunE: func(cmd *cobra.Command, args []string) error {
		var locations []league.Location
		if ok, err := fetch("GET", "/locations", nil, &locations); !ok {
			return err
		}
		return output.Locations(os.Stdout, locations)
	},
}

var addLocationCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a venue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{"name": args[0]}
		if address, _ := cmd.Flags().GetString("address"); address != "" {
			payload["address"] = address
		}
		var l league.Location
		if ok, err := fetch("POST", "/locations", payload, &l); !ok {
			return err
		}
		return output.Locations(os.Stdout, []league.Location{l})
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Record a match from a scoreboard report read from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			text []byte
			err  error
		)
		if len(args) == 1 {
			text, err = os.ReadFile(args[0])
		} else {
			text, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return errors.Wrap(err, "read report")
		}

		var res league.IngestResult
		if ok, err := fetch("POST", "/matches/from-text", map[string]string{"text": string(text)}, &res); !ok {
			return err
		}

		status := "Match created"
		if res.DryRun {
			status = "Match preview (nothing saved)"
		}
		fmt.Printf("%s: %s at %s\n", status, res.Match.Date.Format(league.DateLayout), res.Match.LocationName)
		rows := [][]string{
			{"Blanco", strings.Join(res.Extracted.WhiteTeamNames, ", ")},
			{"Negro", strings.Join(res.Extracted.BlackTeamNames, ", ")},
		}
		if err := output.Table(os.Stdout, []string{"Team", "Players"}, rows); err != nil {
			return err
		}
		if len(res.CreatedPlayers) > 0 {
			fmt.Printf("New players created: %s\n", strings.Join(res.CreatedPlayers, ", "))
		}
		if label := res.Extracted.WinnerLabel; res.UnrecognizedWinnerLabel && label != nil {
			fmt.Printf("Winner label '%s' was not recognized, the match was recorded as a draw.\n", *label)
		}
		return nil
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		var lb stats.Leaderboard
		if ok, err := fetch("GET", "/stats/leaderboard", nil, &lb); !ok {
			return err
		}
		return output.Leaderboard(os.Stdout, &lb)
	},
}

var matchStatsCmd = &cobra.Command{
	Use:   "match-stats",
	Short: "Show match statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var ms stats.MatchStats
		if ok, err := fetch("GET", "/stats/matches", nil, &ms); !ok {
			return err
		}
		return output.MatchStats(os.Stdout, &ms)
	},
}

var playerStatsCmd = &cobra.Command{
	Use:   "player-stats <player-id>",
	Short: "Show the detail statistics of one player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ps stats.PlayerStats
		if ok, err := fetch("GET", "/players/"+args[0]+"/stats", nil, &ps); !ok {
			return err
		}
		return output.PlayerStats(os.Stdout, &ps)
	},
}

func printRaw(method, endpoint string) error {
	body, err := call(method, endpoint, nil)
	if err != nil {
		return err
	}
	fmt.Println(string(body))
	return nil
}
