package shared

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/opsdeck/opsdeck/testing"
)

func TestAuditRecordValidatesRequiredFields(t *testing.T) {
	logger := NewAuditLogger(10)

	require.Error(t, logger.Record(AuditLog{Action: "create", Entity: "sale"}))
	require.NoError(t, logger.Record(AuditLog{Actor: "admin", Action: "create", Entity: "sale", EntityID: "1"}))

	entries := logger.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].At.IsZero(), "timestamp defaults to now")
}

func TestAuditLoggerEvictsOldestBeyondLimit(t *testing.T) {
	logger := NewAuditLogger(3)
	for i := 0; i < 5; i++ {
		require.NoError(t, logger.Record(AuditLog{
			Actor: "admin", Action: "create", Entity: "sale", EntityID: strconv.Itoa(i),
		}))
	}

	entries := logger.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "2", entries[0].EntityID)
	assert.Equal(t, "4", entries[2].EntityID)
}

func TestAuditEntriesReturnsCopy(t *testing.T) {
	logger := NewAuditLogger(10)
	require.NoError(t, logger.Record(AuditLog{Actor: "admin", Action: "delete", Entity: "user", EntityID: "1"}))

	entries := logger.Entries()
	entries[0].EntityID = "tampered"
	assert.Equal(t, "1", logger.Entries()[0].EntityID)
}
