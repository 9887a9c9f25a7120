package extract

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/squadgraph/internal/dataset"
)

const gamesCSV = `game_id,competition_id,season,date,home_club_id,away_club_id,home_club_name,away_club_name
1,CL,2019,2019-10-22,131,46,FC Barcelona,Inter Milan
2,CL,2012,2012-03-01,131,46,FC Barcelona,Inter Milan
3,ES1,2019,2019-11-01,131,999,FC Barcelona,Somebody Else
4,CL,2020,,131,46,FC Barcelona,Inter Milan
5,CL,2020,2020-02-02,46.0,131,Inter Milan,FC Barcelona
`

const appearancesCSV = `appearance_id,game_id,player_id,player_club_id,date
a,1,10,131,2019-10-22
b,1,11,131,2019-10-22
c,1,10,131,2019-10-22
d,1,20,46,2019-10-22
e,2,10,131,2012-03-01
f,3,12,131,2019-11-01
g,5,,46,2020-02-02
h,5,21,46,2020-02-02
`

const playersCSV = `player_id,first_name,last_name,name
10,Lionel,Messi,Lionel Messi
11,Luis,Suarez,Luis Suarez
12,Ansu,Fati,Ansu Fati
20,Lautaro,Martinez,Lautaro Martinez
10,Duplicate,Row,Should Not Win
`

func run(t *testing.T) *Result {
	t.Helper()
	res, err := Run(Sources{
		Games:       strings.NewReader(gamesCSV),
		Appearances: strings.NewReader(appearancesCSV),
		Players:     strings.NewReader(playersCSV),
	}, DefaultOptions(), nil)
	require.NoError(t, err)
	return res
}

func TestRun(t *testing.T) {
	res := run(t)

	assert.Equal(t, 5, res.GamesScanned)
	require.Len(t, res.Matches, 2, "window, club allow list and missing dates filter games")

	m := res.Matches[0]
	assert.Equal(t, "1", m.ID)
	assert.Equal(t, 2019, m.Year)
	assert.Equal(t, "FC Barcelona", m.Home.ClubName)
	assert.Equal(t, []int{10, 11}, m.Home.Players, "repeat appearances collapse")
	assert.Equal(t, []int{20}, m.Away.Players)

	m = res.Matches[1]
	assert.Equal(t, "5", m.ID)
	assert.Equal(t, 46, *m.Home.ClubID)
	assert.Equal(t, []int{21}, m.Home.Players)
	assert.Equal(t, []int{}, m.Away.Players)

	assert.Equal(t, map[int]string{10: "Lionel Messi", 11: "Luis Suarez", 20: "Lautaro Martinez"}, res.Players)
}

func TestRun_CustomWindow(t *testing.T) {
	opts := DefaultOptions()
	opts.Since = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	opts.Until = time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC)

	res, err := Run(Sources{
		Games:       strings.NewReader(gamesCSV),
		Appearances: strings.NewReader(appearancesCSV),
		Players:     strings.NewReader(playersCSV),
	}, opts, nil)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, 2012, res.Matches[0].Year)
}

func TestRun_MissingColumns(t *testing.T) {
	_, err := Run(Sources{
		Games:       strings.NewReader("game_id,date\n1,2019-01-01\n"),
		Appearances: strings.NewReader(appearancesCSV),
		Players:     strings.NewReader(playersCSV),
	}, DefaultOptions(), nil)
	assert.ErrorContains(t, err, "missing columns away_club_id, home_club_id")
}

func TestWriteMatches_Loadable(t *testing.T) {
	res := run(t)

	var mbuf, pbuf bytes.Buffer
	require.NoError(t, WriteMatches(&mbuf, res.Matches))
	require.NoError(t, WritePlayers(&pbuf, res.Players))

	ds, stats, err := dataset.DecodeMatches(&mbuf, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Matches)
	lo, hi, _ := ds.YearBounds()
	assert.Equal(t, 2019, lo)
	assert.Equal(t, 2020, hi)

	dir, _, err := dataset.DecodePlayers(&pbuf)
	require.NoError(t, err)
	assert.Equal(t, "Lionel Messi", dir.Name(10))
}
