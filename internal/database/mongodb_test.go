package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongoRejectsInvalidURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "not-a-mongodb-uri", time.Second, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mongo connect")
}

func TestConnectMongoClampsAttempts(t *testing.T) {
	// a non-positive attempt count still dials exactly once, without backoff
	start := time.Now()
	_, err := ConnectMongo(context.Background(), "not-a-mongodb-uri", time.Second, 0)
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Second)
}
