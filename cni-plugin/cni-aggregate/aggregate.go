package cniaggregate

import (
	"context"

	"go.uber.org/zap"

	"github.com/zklapow/cni-multi/result"
	"github.com/zklapow/cni-multi/types"
)

// Delegate runs a single configured plugin. A nil result contributes nothing.
type Delegate interface {
	Invoke(ctx context.Context, name string, conf types.PluginConf, req *types.NetworkRequest) (*result.Result, error)
}

// Aggregator runs every configured plugin and merges what they return.
type Aggregator struct {
	delegate Delegate
	logger   *zap.Logger
}

func NewAggregator(delegate Delegate, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		delegate: delegate,
		logger:   logger,
	}
}

// Aggregate invokes the plugins one at a time in sorted name order. The first
// failure aborts the loop; plugins that already ran are not undone.
func (a *Aggregator) Aggregate(ctx context.Context, req *types.NetworkRequest) (*result.Result, error) {
	agg := result.NewResult(req.Config.CNIVersion)

	for _, name := range req.Config.PluginNames() {
		res, err := a.delegate.Invoke(ctx, name, req.Config.Plugins[name], req)
		if err != nil {
			return nil, err
		}
		if res == nil {
			continue
		}

		agg.Interfaces = append(agg.Interfaces, res.Interfaces...)
		if req.Config.IsFiltered(name) {
			a.logger.Debug("Dropping filtered addresses",
				zap.String("plugin", name), zap.Int("count", len(res.IPs)))
		} else {
			agg.IPs = append(agg.IPs, res.IPs...)
		}
		agg.Routes = append(agg.Routes, res.Routes...)
	}

	return agg, nil
}
