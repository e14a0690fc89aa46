package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "locations", "teams", "team_players", "matches"} {
		t.Run(table, func(t *testing.T) {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			require.NoError(t, err, "Querying for %s table should not produce an error", table)
			assert.Equal(t, table, name)
		})
	}
}

func TestInitDB_EnforcesWinnerConstraint(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO locations (id, name, created_at) VALUES ('loc1', 'CUM', 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO teams (id) VALUES ('white'), ('black'), ('other')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO matches (id, date, location_id, white_team_id, black_team_id, winner_team_id, created_at)
		VALUES ('m1', '2026-02-15', 'loc1', 'white', 'black', 'other', 1)`)
	assert.Error(t, err, "winner must be one of the match's teams")

	_, err = db.Exec(`INSERT INTO matches (id, date, location_id, white_team_id, black_team_id, winner_team_id, created_at)
		VALUES ('m2', '2026-02-15', 'loc1', 'white', 'black', NULL, 1)`)
	assert.NoError(t, err, "a draw has no winner")
}

func TestInitDB_EnforcesForeignKeys(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO teams (id) VALUES ('white'), ('black')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO matches (id, date, location_id, white_team_id, black_team_id, created_at)
		VALUES ('m1', '2026-02-15', 'missing', 'white', 'black', 1)`)
	assert.Error(t, err, "unknown location must be rejected")
}
