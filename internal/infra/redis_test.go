package infra

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := InitRedis(context.Background(), srv.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	srv.CheckGet(t, "k", "v")
}

func TestInitRedis_unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := InitRedis(context.Background(), addr, "")
	require.ErrorContains(t, err, addr)
}
