package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewSessionID generates the opaque identifier stored on session rows
// and echoed back to clients inside access tokens.
func NewSessionID() string {
	return ksuid.New().String()
}

// NewRowID generates a snowflake ID string for persisted records, using a
// node ID from the SNOWFLAKE_NODE environment variable (default node 1).
func NewRowID() string {
	nodeEnv := os.Getenv("SNOWFLAKE_NODE")
	if nodeEnv == "" {
		return newRowIDWithNode(1)
	}
	nodeID, err := strconv.ParseInt(nodeEnv, 10, 64)
	if err != nil {
		return newRowIDWithNode(1)
	}
	return newRowIDWithNode(nodeID)
}

// newRowIDWithNode falls back to a KSUID when the snowflake node cannot be
// initialized, so callers always receive a unique ID.
func newRowIDWithNode(nodeID int64) string {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return ksuid.New().String()
	}
	return node.Generate().String()
}
