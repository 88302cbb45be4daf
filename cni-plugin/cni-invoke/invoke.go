package cniinvoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/containernetworking/cni/pkg/invoke"
	"go.uber.org/zap"

	"github.com/zklapow/cni-multi/result"
	"github.com/zklapow/cni-multi/types"
)

// Invoker runs one delegate plugin per call.
type Invoker struct {
	exec   Exec
	diag   io.Writer
	logger *zap.Logger
}

// NewInvoker returns an Invoker. The stdout of a failing delegate is echoed to diag.
func NewInvoker(e Exec, diag io.Writer, logger *zap.Logger) *Invoker {
	return &Invoker{
		exec:   e,
		diag:   diag,
		logger: logger,
	}
}

// PluginType returns the executable name selected by a configuration fragment.
func PluginType(name string, conf types.PluginConf) (string, error) {
	raw, ok := conf["type"]
	if !ok {
		return "", &types.UnresolvedPluginTypeError{Plugin: name, Reason: "no \"type\" field"}
	}
	pluginType, ok := raw.(string)
	if !ok {
		return "", &types.UnresolvedPluginTypeError{Plugin: name, Reason: fmt.Sprintf("\"type\" is %T, not a string", raw)}
	}
	if pluginType == "" {
		return "", &types.UnresolvedPluginTypeError{Plugin: name, Reason: "\"type\" is empty"}
	}
	if strings.ContainsRune(pluginType, filepath.Separator) || strings.ContainsRune(pluginType, '/') {
		return "", &types.UnresolvedPluginTypeError{Plugin: name, Reason: fmt.Sprintf("%q contains a path separator", pluginType)}
	}
	return pluginType, nil
}

// ResolvePlugin maps a fragment onto the executable to run, searching every
// directory of searchPath in order.
func ResolvePlugin(e Exec, name string, conf types.PluginConf, searchPath string) (string, error) {
	pluginType, err := PluginType(name, conf)
	if err != nil {
		return "", err
	}

	pluginPath, err := e.FindInPath(pluginType, filepath.SplitList(searchPath))
	if err != nil {
		return "", &types.PluginNotFoundError{Plugin: name, Type: pluginType, Err: err}
	}
	return pluginPath, nil
}

// SubRequest is the config a delegate receives: its own fragment plus the
// network name and version of the top-level config.
func SubRequest(conf types.PluginConf, netConf *types.NetConf) types.PluginConf {
	sub := make(types.PluginConf, len(conf)+2)
	for k, v := range conf {
		sub[k] = v
	}
	sub["name"] = netConf.Name
	sub["cniVersion"] = netConf.CNIVersion
	return sub
}

// Invoke runs the delegate configured under name with CNI_IFNAME set to name.
// For teardown it always returns a nil result; a failing delegate is only logged.
func (i *Invoker) Invoke(ctx context.Context, name string, conf types.PluginConf, req *types.NetworkRequest) (*result.Result, error) {
	logger := i.logger.With(zap.String("plugin", name))

	pluginPath, err := ResolvePlugin(i.exec, name, conf, req.Path)
	if err != nil {
		return nil, err
	}

	stdinData, err := json.Marshal(SubRequest(conf, req.Config))
	if err != nil {
		return nil, fmt.Errorf("plugin %q: failed to serialize sub request: %w", name, err)
	}

	environ := (&invoke.Args{
		Command:       req.Command.String(),
		ContainerID:   req.ContainerID,
		NetNS:         req.Netns,
		PluginArgsStr: req.Args,
		IfName:        name,
		Path:          req.Path,
	}).AsEnv()
	if !req.HasArgs {
		environ = withoutEnv(environ, types.EnvArgs)
	}

	logger.Info("Executing delegate", zap.String("path", pluginPath))
	logger.Debug("Sending sub request", zap.ByteString("request", stdinData))

	output, err := i.exec.ExecPlugin(ctx, pluginPath, stdinData, environ)

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// the delegate never ran
		return nil, &types.DelegateFailedError{Plugin: name, Err: err}
	}

	if req.Command.IsTeardown() {
		if err != nil {
			logger.Warn("Delegate failed during teardown, ignoring",
				zap.Error(err), zap.ByteString("output", output))
		}
		return nil, nil
	}

	if err != nil {
		fmt.Fprintln(i.diag, string(output))
		return nil, &types.DelegateFailedError{Plugin: name, Err: err}
	}

	logger.Debug("Got raw output", zap.ByteString("output", output))

	res, err := result.ParseResult(output)
	if err != nil {
		return nil, &types.MalformedDelegateResponseError{Plugin: name, Err: err}
	}
	return res, nil
}

// withoutEnv drops key from environ.
func withoutEnv(environ []string, key string) []string {
	prefix := key + "="
	kept := environ[:0]
	for _, kv := range environ {
		if !strings.HasPrefix(kv, prefix) {
			kept = append(kept, kv)
		}
	}
	return kept
}
