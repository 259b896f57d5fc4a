package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

func TestEventPaginationToken(t *testing.T) {
	evt := types.NewEvent(types.EventVote, 90).WithAccount("alice")
	evt.ID = "e1"
	doc := NewEventDocument(42, evt)

	token, err := BuildEventPaginationToken(*doc)
	require.NoError(t, err)

	decoded, err := DecodePaginationToken[EventPagination](token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), decoded.Seq)

	_, err = DecodePaginationToken[EventPagination]("!!")
	assert.Error(t, err)
}
