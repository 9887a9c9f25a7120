package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	event, err := ParseEvent(`{"matches": 1532, "players": 880, "ts": 1718000000}`)
	require.NoError(t, err)
	assert.Equal(t, DatasetEvent{Matches: 1532, Players: 880, Timestamp: 1718000000}, event)

	_, err = ParseEvent("not json")
	assert.ErrorContains(t, err, "parse dataset_loaded payload")
}
