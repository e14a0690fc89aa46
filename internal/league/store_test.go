package league_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/handballito/handballito-time/internal/database"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return league.New(db), db, teardown
}

func strPtr(s string) *string { return &s }

func TestAddAndListPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	chris, err := store.AddPlayer(ctx, "Chris")
	require.NoError(t, err)
	_, err = store.AddPlayer(ctx, "  Guchy ")
	require.NoError(t, err)

	players, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Chris", players[0].Name)
	assert.Equal(t, "Guchy", players[1].Name, "names are trimmed")

	got, err := store.GetPlayer(ctx, chris.ID)
	require.NoError(t, err)
	assert.Equal(t, *chris, *got)

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := store.AddPlayer(ctx, "   ")
		assert.True(t, league.IsValidation(err))
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := store.GetPlayer(ctx, "missing")
		assert.True(t, league.IsNotFound(err))
	})
}

func TestLocations(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	cum, err := store.AddLocation(ctx, "CUM", strPtr("Gral. Belgrano 2676"))
	require.NoError(t, err)
	_, err = store.AddLocation(ctx, "INDU", nil)
	require.NoError(t, err)

	locations, err := store.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	require.NotNil(t, locations[0].Address)
	assert.Equal(t, "Gral. Belgrano 2676", *locations[0].Address)
	assert.Nil(t, locations[1].Address)

	updated, err := store.UpdateLocation(ctx, cum.ID, "CUM Munro", nil)
	require.NoError(t, err)
	assert.Equal(t, "CUM Munro", updated.Name)

	got, err := store.GetLocation(ctx, cum.ID)
	require.NoError(t, err)
	assert.Equal(t, "CUM Munro", got.Name)
	assert.Nil(t, got.Address)

	_, err = store.UpdateLocation(ctx, "missing", "X", nil)
	assert.True(t, league.IsNotFound(err))
}

func TestAddMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	loc, err := store.AddLocation(ctx, "CUM", nil)
	require.NoError(t, err)
	a, _ := store.AddPlayer(ctx, "A")
	b, _ := store.AddPlayer(ctx, "B")
	c, _ := store.AddPlayer(ctx, "C")

	date := time.Date(2026, 2, 15, 18, 30, 0, 0, time.UTC)
	m, err := store.AddMatch(ctx, league.NewMatch{
		Date:           date,
		LocationID:     loc.ID,
		WhitePlayerIDs: []string{a.ID, b.ID},
		BlackPlayerIDs: []string{c.ID},
		Winner:         league.SideBlack,
	})
	require.NoError(t, err)
	require.NotNil(t, m.WinnerTeamID)
	assert.Equal(t, m.Black.ID, *m.WinnerTeamID)

	got, err := store.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, "CUM", got.LocationName)
	assert.Equal(t, []string{a.ID, b.ID}, got.White.PlayerIDs)
	assert.Equal(t, []string{c.ID}, got.Black.PlayerIDs)
	side, ok := got.WinnerSide()
	require.True(t, ok)
	assert.Equal(t, league.SideBlack, side)

	t.Run("invalid location", func(t *testing.T) {
		_, err := store.AddMatch(ctx, league.NewMatch{Date: date, LocationID: "missing", WhitePlayerIDs: []string{a.ID}})
		assert.True(t, league.IsValidation(err))
	})

	t.Run("invalid player", func(t *testing.T) {
		_, err := store.AddMatch(ctx, league.NewMatch{Date: date, LocationID: loc.ID, WhitePlayerIDs: []string{"ghost"}})
		assert.True(t, league.IsValidation(err))
	})

	t.Run("player on both teams", func(t *testing.T) {
		_, err := store.AddMatch(ctx, league.NewMatch{
			Date: date, LocationID: loc.ID,
			WhitePlayerIDs: []string{a.ID}, BlackPlayerIDs: []string{a.ID},
		})
		assert.True(t, league.IsValidation(err))
	})

	matches, err := store.ListMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 1, "rejected matches leave nothing behind")
}

func TestUpdateMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	cum, _ := store.AddLocation(ctx, "CUM", nil)
	indu, _ := store.AddLocation(ctx, "INDU", nil)
	a, _ := store.AddPlayer(ctx, "A")
	b, _ := store.AddPlayer(ctx, "B")
	c, _ := store.AddPlayer(ctx, "C")

	m, err := store.AddMatch(ctx, league.NewMatch{
		Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), LocationID: cum.ID,
		WhitePlayerIDs: []string{a.ID}, BlackPlayerIDs: []string{b.ID},
	})
	require.NoError(t, err)
	assert.Nil(t, m.WinnerTeamID)

	updated, err := store.UpdateMatch(ctx, m.ID, league.MatchUpdate{
		Date:           time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		LocationID:     &indu.ID,
		WinnerTeamID:   &m.White.ID,
		WhitePlayerIDs: []string{a.ID, c.ID},
		BlackPlayerIDs: []string{b.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "INDU", updated.LocationName)

	got, err := store.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Date.Day())
	assert.Equal(t, indu.ID, got.LocationID)
	assert.Equal(t, []string{a.ID, c.ID}, got.White.PlayerIDs)
	assert.Equal(t, league.ResultWin, got.ResultFor(league.SideWhite))

	t.Run("winner must play in the match", func(t *testing.T) {
		_, err := store.UpdateMatch(ctx, m.ID, league.MatchUpdate{
			Date: got.Date, WinnerTeamID: strPtr("other-team"),
			WhitePlayerIDs: []string{a.ID}, BlackPlayerIDs: []string{b.ID},
		})
		assert.True(t, league.IsValidation(err))
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := store.UpdateMatch(ctx, "missing", league.MatchUpdate{Date: got.Date, WhitePlayerIDs: []string{a.ID}})
		assert.True(t, league.IsNotFound(err))
	})
}

func TestListMatchesOrdering(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	loc, _ := store.AddLocation(ctx, "CUM", nil)
	a, _ := store.AddPlayer(ctx, "A")
	b, _ := store.AddPlayer(ctx, "B")

	add := func(day int) string {
		m, err := store.AddMatch(ctx, league.NewMatch{
			Date: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC), LocationID: loc.ID,
			WhitePlayerIDs: []string{a.ID}, BlackPlayerIDs: []string{b.ID},
		})
		require.NoError(t, err)
		return m.ID
	}
	late := add(20)
	first := add(5)
	second := add(5)

	matches, err := store.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, []string{first, second, late}, []string{matches[0].ID, matches[1].ID, matches[2].ID})
}

func TestWithTx(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithTx(ctx, func(tx league.Tx) error {
			require.NoError(t, tx.InsertPlayer(ctx, league.Player{ID: "p1", Name: "Ghost"}))
			players, err := tx.ListPlayers(ctx)
			require.NoError(t, err)
			assert.Len(t, players, 1, "inserts are visible inside the transaction")
			return boom
		})
		assert.ErrorIs(t, err, boom)

		players, err := store.ListPlayers(ctx)
		require.NoError(t, err)
		assert.Empty(t, players)
	})

	t.Run("commits on success", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx league.Tx) error {
			return tx.InsertPlayer(ctx, league.Player{ID: "p2", Name: "Kept"})
		})
		require.NoError(t, err)

		players, err := store.ListPlayers(ctx)
		require.NoError(t, err)
		require.Len(t, players, 1)
		assert.Equal(t, "Kept", players[0].Name)
	})
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	loc, _ := store.AddLocation(ctx, "CUM", nil)
	a, _ := store.AddPlayer(ctx, "A")
	_, err := store.AddMatch(ctx, league.NewMatch{Date: time.Now(), LocationID: loc.ID, WhitePlayerIDs: []string{a.ID}})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	players, _ := store.ListPlayers(ctx)
	matches, _ := store.ListMatches(ctx)
	locations, _ := store.ListLocations(ctx)
	assert.Empty(t, players)
	assert.Empty(t, matches)
	assert.Empty(t, locations)
}
