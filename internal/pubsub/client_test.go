package pubsub

import (
	"context"
	"testing"

	"github.com/handballito/handballito-time/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDisabledClient(t *testing.T) {
	c := NewDisabled()
	defer c.Close()

	event := league.MatchRecorded{
		MatchID:        "m1",
		Date:           "2025-02-01",
		LocationName:   "CUM",
		Winner:         league.SideBlack,
		WhiteNames:     []string{"Guchy", "Depol"},
		BlackNames:     []string{"Chris", "Pende"},
		CreatedPlayers: []string{"Depol"},
	}
	require.NoError(t, c.SendMessage(context.Background(), EventMatchRecorded, event))

	data, err := msgpack.Marshal(event)
	require.NoError(t, err)
	var got league.MatchRecorded
	require.NoError(t, c.ProcessMessage(data, &got))
	assert.Equal(t, event, got)

	assert.Error(t, c.ProcessMessage([]byte{0xc1}, &got), "0xc1 is never valid MessagePack")
}
