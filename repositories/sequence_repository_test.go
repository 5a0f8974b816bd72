package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDocumentNo(t *testing.T) {
	db := newTestDB(t)

	t.Run("first allocation seeds the counter row", func(t *testing.T) {
		no, err := NextDocumentNo(db, "APRL", "GRN")
		require.NoError(t, err)
		assert.Equal(t, "GRN-APRL-0001", no)
	})

	t.Run("subsequent allocations bump it", func(t *testing.T) {
		no, err := NextDocumentNo(db, "APRL", "GRN")
		require.NoError(t, err)
		assert.Equal(t, "GRN-APRL-0002", no)
	})

	t.Run("doc types keep independent counters", func(t *testing.T) {
		no, err := NextDocumentNo(db, "APRL", "PO")
		require.NoError(t, err)
		assert.Equal(t, "PO-APRL-0001", no)
	})

	t.Run("companies keep independent counters", func(t *testing.T) {
		no, err := NextDocumentNo(db, "OTHR", "GRN")
		require.NoError(t, err)
		assert.Equal(t, "GRN-OTHR-0001", no)
	})
}
