package utils

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingService(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	t.Run("reachable", func(t *testing.T) {
		err := PingService(context.Background(), "http://"+ln.Addr().String(), time.Second)
		assert.NoError(t, err)
	})

	t.Run("missing host", func(t *testing.T) {
		err := PingService(context.Background(), "not-a-url", time.Second)
		assert.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		closed, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := closed.Addr().String()
		closed.Close()

		err = PingService(context.Background(), "http://"+addr, 200*time.Millisecond)
		assert.Error(t, err)
	})
}
