package cnifunc

import (
	"context"
	"io"

	"github.com/containernetworking/cni/pkg/version"
	"go.uber.org/zap"

	"github.com/zklapow/cni-multi/result"
	"github.com/zklapow/cni-multi/types"
)

// SupportedVersions lists the result versions the meta-plugin emits.
var SupportedVersions = version.PluginSupports(result.Version)

// Aggregator merges the results of all configured delegates.
type Aggregator interface {
	Aggregate(ctx context.Context, req *types.NetworkRequest) (*result.Result, error)
}

// MultiCNIPlugin implements the CNI commands on top of an Aggregator.
type MultiCNIPlugin struct {
	Aggregator Aggregator
	Out        io.Writer
	Logger     *zap.Logger
}

// Add runs every delegate and prints the merged result.
func (m *MultiCNIPlugin) Add(ctx context.Context, req *types.NetworkRequest) error {
	return m.respond(ctx, req)
}

// Check runs every delegate and prints the merged result.
func (m *MultiCNIPlugin) Check(ctx context.Context, req *types.NetworkRequest) error {
	return m.respond(ctx, req)
}

// Version runs every delegate and prints the merged result.
func (m *MultiCNIPlugin) Version(ctx context.Context, req *types.NetworkRequest) error {
	return m.respond(ctx, req)
}

// Del runs every delegate but never prints a result.
func (m *MultiCNIPlugin) Del(ctx context.Context, req *types.NetworkRequest) error {
	if _, err := m.Aggregator.Aggregate(ctx, req); err != nil {
		return err
	}
	m.Logger.Info("Not sending response to DEL", zap.String("containerID", req.ContainerID))
	return nil
}

func (m *MultiCNIPlugin) respond(ctx context.Context, req *types.NetworkRequest) error {
	agg, err := m.Aggregator.Aggregate(ctx, req)
	if err != nil {
		return err
	}

	resp := &result.Result{
		CNIVersion: result.Version,
		Interfaces: agg.Interfaces,
		IPs:        agg.IPs,
		Routes:     agg.Routes,
	}

	m.Logger.Info("Sending response",
		zap.String("command", req.Command.String()),
		zap.Int("interfaces", len(resp.Interfaces)),
		zap.Int("ips", len(resp.IPs)),
		zap.Int("routes", len(resp.Routes)))

	return result.OutputResult(m.Out, resp)
}
