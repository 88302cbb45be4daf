package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	cnifactory "github.com/zklapow/cni-multi/cni-plugin/cni-factory"
	cnifunc "github.com/zklapow/cni-multi/cni-plugin/cni-func"
	cniservice "github.com/zklapow/cni-multi/cni-plugin/cni-service"
	"github.com/zklapow/cni-multi/tools/logging"
	"github.com/zklapow/cni-multi/types"
)

var (
	// Log file and level, can be injected at build time:
	// go build -ldflags "-X main.LogPath=/var/log/cni-multi.log -X main.LogLevel=debug" ./cmd/cni-multi
	LogPath  = logging.DefaultLogPath
	LogLevel = logging.DefaultLogLevel
)

func main() {
	os.Exit(run(os.LookupEnv, os.Stdin, os.Stdout, os.Stderr))
}

func run(lookup types.LookupEnvFunc, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := logging.New(logging.Options{Path: LogPath, Level: LogLevel}.WithEnv(lookup))
	defer logger.Sync()

	logger.Info("Running CNI multi plugin",
		zap.Strings("supportedVersions", cnifunc.SupportedVersions.SupportedVersions()))

	req, err := types.LoadRequest(lookup, stdin)
	if err != nil {
		return fail(logger, stderr, err)
	}

	logger.Info("Handling request",
		zap.String("command", req.Command.String()),
		zap.String("containerID", req.ContainerID),
		zap.String("netns", req.Netns),
		zap.String("ifname", req.IfName),
		zap.String("network", req.Config.Name),
		zap.Strings("plugins", req.Config.PluginNames()),
		zap.Strings("filter", req.Config.Filter))

	plugin := cnifactory.NewCNIPlugin(logger, stdout, stderr)
	if err := cniservice.Dispatch(context.Background(), plugin, req); err != nil {
		return fail(logger, stderr, err)
	}
	return 0
}

// fail reports err on stderr as a CNI error document; stdout is left to the
// delegate diagnostics.
func fail(logger *zap.Logger, stderr io.Writer, err error) int {
	logger.Error("Request failed", zap.Error(err))

	data, mErr := json.Marshal(types.ToCNIError(err))
	if mErr != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stderr, string(data))
	return 1
}
