package scoreboard

import (
	"testing"

	"github.com/handballito/handballito-time/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("full report with black on the left", func(t *testing.T) {
		raw := "CUM 15/02/2026 Negro\nNegro   Blanco\nChris.  Guchy\nPende   Depol"

		data, err := Parse(raw)
		require.NoError(t, err)

		assert.Equal(t, "CUM", data.Location)
		assert.Equal(t, "15/02/2026", data.Date)
		require.NotNil(t, data.WinnerLabel)
		assert.Equal(t, "Negro", *data.WinnerLabel)
		assert.Equal(t, []string{"Chris", "Pende"}, data.BlackTeamNames)
		assert.Equal(t, []string{"Guchy", "Depol"}, data.WhiteTeamNames)
	})

	t.Run("white on the left", func(t *testing.T) {
		raw := "INDU 01/03/2026\nBlanco      Negro\nNico   Nina\n"

		data, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "INDU", data.Location)
		assert.Nil(t, data.WinnerLabel, "nothing after the date means no winner")
		assert.Equal(t, []string{"Nico"}, data.WhiteTeamNames)
		assert.Equal(t, []string{"Nina"}, data.BlackTeamNames)
	})

	t.Run("header labels are case-insensitive", func(t *testing.T) {
		data, err := Parse("CUM 15/02/2026\nNEGRO  BLANCO\nChris  Guchy")
		require.NoError(t, err)
		assert.Equal(t, []string{"Chris"}, data.BlackTeamNames)
	})

	t.Run("single name rows go to the left column", func(t *testing.T) {
		raw := "CUM 15/02/2026\nBlanco  Negro\nA  B\nC\n  D.  \n"

		data, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C", "D"}, data.WhiteTeamNames)
		assert.Equal(t, []string{"B"}, data.BlackTeamNames)
	})

	t.Run("blank lines and carriage returns are ignored", func(t *testing.T) {
		raw := "\r\n  CUM 15/02/2026 blanco \r\n\r\nNegro   Blanco\r\n\r\nChris  Guchy\r\n"

		data, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "blanco", *data.WinnerLabel)
		assert.Equal(t, []string{"Chris"}, data.BlackTeamNames)
		assert.Equal(t, []string{"Guchy"}, data.WhiteTeamNames)
	})

	t.Run("columns split on Unicode spaces", func(t *testing.T) {
		raw := "CUM 15/02/2026 Negro\nNegro\u00a0\u00a0 Blanco\nChris.\u00a0\u00a0Guchy\nPende \vDepol\u2003\u2003\n"

		data, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"Chris", "Pende"}, data.BlackTeamNames)
		assert.Equal(t, []string{"Guchy", "Depol"}, data.WhiteTeamNames)
	})

	t.Run("label line split by a vertical tab run", func(t *testing.T) {
		data, err := Parse("CUM 15/02/2026\nNegro \vBlanco\nChris  Guchy")
		require.NoError(t, err)
		assert.Equal(t, []string{"Chris"}, data.BlackTeamNames)
		assert.Equal(t, []string{"Guchy"}, data.WhiteTeamNames)
	})

	t.Run("single spaces stay inside a name", func(t *testing.T) {
		data, err := Parse("CUM 15/02/2026\nBlanco  Negro\nJuan Pablo   Ana Maria")
		require.NoError(t, err)
		assert.Equal(t, []string{"Juan Pablo"}, data.WhiteTeamNames)
		assert.Equal(t, []string{"Ana Maria"}, data.BlackTeamNames)
	})

	t.Run("rows that clean to nothing are dropped", func(t *testing.T) {
		data, err := Parse("CUM 15/02/2026\nBlanco  Negro\n...   ..\nA  B")
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, data.WhiteTeamNames)
	})

	t.Run("date is extracted even when it will not parse", func(t *testing.T) {
		data, err := Parse("CUM 35/15/2024\nBlanco  Negro\nA  B")
		require.NoError(t, err)
		assert.Equal(t, "35/15/2024", data.Date)
	})

	t.Run("location may be empty", func(t *testing.T) {
		data, err := Parse("15/02/2026\nBlanco  Negro\nA  B")
		require.NoError(t, err)
		assert.Equal(t, "", data.Location)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "too few lines",
			raw:  "CUM 15/02/2026\nNegro  Blanco\n\n",
			want: "Text must have at least a header line, a team labels line, and one player line.",
		},
		{
			name: "empty input",
			raw:  "",
			want: "Text must have at least a header line, a team labels line, and one player line.",
		},
		{
			name: "no date",
			raw:  "CUM sometime\nNegro  Blanco\nA  B",
			want: "Could not find a date (DD/MM/YYYY) in the first line: 'CUM sometime'.",
		},
		{
			name: "single header label",
			raw:  "CUM 15/02/2026\nNegro Blanco\nA  B",
			want: "Could not parse team headers from line: 'Negro Blanco'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)
			assert.True(t, league.IsValidation(err))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
