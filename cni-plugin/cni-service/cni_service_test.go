package cniservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zklapow/cni-multi/types"
)

type recordingPlugin struct {
	called []types.Command
}

func (r *recordingPlugin) record(req *types.NetworkRequest, cmd types.Command) error {
	r.called = append(r.called, cmd)
	return nil
}

func (r *recordingPlugin) Add(ctx context.Context, req *types.NetworkRequest) error {
	return r.record(req, types.CommandAdd)
}

func (r *recordingPlugin) Check(ctx context.Context, req *types.NetworkRequest) error {
	return r.record(req, types.CommandCheck)
}

func (r *recordingPlugin) Del(ctx context.Context, req *types.NetworkRequest) error {
	return r.record(req, types.CommandDel)
}

func (r *recordingPlugin) Version(ctx context.Context, req *types.NetworkRequest) error {
	return r.record(req, types.CommandVersion)
}

func TestDispatch(t *testing.T) {
	for _, cmd := range []types.Command{types.CommandAdd, types.CommandCheck, types.CommandDel, types.CommandVersion} {
		p := &recordingPlugin{}
		require.NoError(t, Dispatch(context.Background(), p, &types.NetworkRequest{Command: cmd}))
		assert.Equal(t, []types.Command{cmd}, p.called)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	p := &recordingPlugin{}
	err := Dispatch(context.Background(), p, &types.NetworkRequest{Command: "GC"})

	var unsupported *types.UnsupportedCommandError
	require.True(t, errors.As(err, &unsupported), "got %v", err)
	assert.Empty(t, p.called)
}
