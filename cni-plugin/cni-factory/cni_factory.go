package cnifactory

import (
	"io"

	"go.uber.org/zap"

	cniaggregate "github.com/zklapow/cni-multi/cni-plugin/cni-aggregate"
	cnifunc "github.com/zklapow/cni-multi/cni-plugin/cni-func"
	cniinvoke "github.com/zklapow/cni-multi/cni-plugin/cni-invoke"
	cniservice "github.com/zklapow/cni-multi/cni-plugin/cni-service"
)

// NewCNIPlugin returns a meta-plugin that runs delegates as child processes.
// Results and delegate diagnostics go to stdout, delegate stderr to stderr.
func NewCNIPlugin(logger *zap.Logger, stdout, stderr io.Writer) cniservice.CNIPlugin {
	return NewCNIPluginWithExec(&cniinvoke.RawExec{Stderr: stderr}, logger, stdout)
}

// NewCNIPluginWithExec is NewCNIPlugin with a caller supplied executor.
func NewCNIPluginWithExec(exec cniinvoke.Exec, logger *zap.Logger, stdout io.Writer) cniservice.CNIPlugin {
	invoker := cniinvoke.NewInvoker(exec, stdout, logger)
	return &cnifunc.MultiCNIPlugin{
		Aggregator: cniaggregate.NewAggregator(invoker, logger),
		Out:        stdout,
		Logger:     logger,
	}
}
