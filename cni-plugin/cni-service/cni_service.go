package cniservice

// The meta-plugin answers the four CNI commands: Add, Check, Del and Version
import (
	"context"

	"github.com/zklapow/cni-multi/types"
)

type CNIPlugin interface {
	Add(ctx context.Context, req *types.NetworkRequest) error
	Check(ctx context.Context, req *types.NetworkRequest) error
	Del(ctx context.Context, req *types.NetworkRequest) error
	Version(ctx context.Context, req *types.NetworkRequest) error
}

// Dispatch calls the method of plugin matching req.Command.
func Dispatch(ctx context.Context, plugin CNIPlugin, req *types.NetworkRequest) error {
	switch req.Command {
	case types.CommandAdd:
		return plugin.Add(ctx, req)
	case types.CommandCheck:
		return plugin.Check(ctx, req)
	case types.CommandDel:
		return plugin.Del(ctx, req)
	case types.CommandVersion:
		return plugin.Version(ctx, req)
	default:
		return &types.UnsupportedCommandError{Command: req.Command.String()}
	}
}
