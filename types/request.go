package types

import (
	"fmt"
	"io"

	"github.com/containernetworking/cni/pkg/skel"
)

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// NetworkRequest is one CNI invocation of the meta-plugin.
type NetworkRequest struct {
	Command Command
	skel.CmdArgs

	// HasArgs is set when CNI_ARGS was present, even if empty.
	HasArgs bool

	Config *NetConf
}

// LoadRequest builds a request from the CNI environment and the config on stdin.
func LoadRequest(lookup LookupEnvFunc, stdin io.Reader) (*NetworkRequest, error) {
	env := make(map[string]string, len(requiredEnv))
	for _, key := range requiredEnv {
		val, ok := lookup(key)
		if !ok {
			return nil, &MissingEnvironmentError{Var: key}
		}
		env[key] = val
	}

	cmd, err := ParseCommand(env[EnvCommand])
	if err != nil {
		return nil, err
	}

	stdinData, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from stdin: %w", err)
	}

	conf, err := LoadNetConf(stdinData)
	if err != nil {
		return nil, &MalformedConfigError{Err: err}
	}

	// CNI_ARGS is optional
	args, hasArgs := lookup(EnvArgs)

	return &NetworkRequest{
		Command: cmd,
		CmdArgs: skel.CmdArgs{
			ContainerID: env[EnvContainerID],
			Netns:       env[EnvNetNS],
			IfName:      env[EnvIfName],
			Args:        args,
			Path:        env[EnvPath],
			StdinData:   stdinData,
		},
		HasArgs: hasArgs,
		Config:  conf,
	}, nil
}
