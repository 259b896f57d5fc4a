package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVoteChoice(t *testing.T) {
	for _, choice := range []VoteChoice{Undecided, Approve, Reject} {
		parsed, err := ParseVoteChoice(choice.String())
		require.NoError(t, err)
		assert.Equal(t, choice, parsed)
	}

	parsed, err := ParseVoteChoice("1")
	require.NoError(t, err)
	assert.Equal(t, Approve, parsed)

	_, err = ParseVoteChoice("abstain")
	assert.Error(t, err)
	assert.Equal(t, "unknown", VoteChoice(7).String())
	assert.True(t, Reject.Valid())
	assert.False(t, VoteChoice(3).Valid())
}
