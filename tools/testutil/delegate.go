// Package testutil installs fake delegate plugins for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Delegate describes a fake plugin executable. The script records its stdin,
// environment and CNI_IFNAME next to itself, prints Output and exits with ExitCode.
type Delegate struct {
	Type     string
	Output   string
	ExitCode int
}

// CallsFile lists the CNI_IFNAME of every delegate run in a directory, one per line.
const CallsFile = "calls"

// Install writes the delegate into dir and returns its path.
func Install(t testing.TB, dir string, d Delegate) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "cat > %q.\"$CNI_IFNAME\".stdin\n", filepath.Join(dir, d.Type))
	fmt.Fprintf(&b, "env > %q.\"$CNI_IFNAME\".env\n", filepath.Join(dir, d.Type))
	fmt.Fprintf(&b, "echo \"$CNI_IFNAME\" >> %q\n", filepath.Join(dir, CallsFile))
	if d.Output != "" {
		b.WriteString("cat <<'CNI_MULTI_EOF'\n")
		b.WriteString(d.Output)
		b.WriteString("\nCNI_MULTI_EOF\n")
	}
	fmt.Fprintf(&b, "exit %d\n", d.ExitCode)

	path := filepath.Join(dir, d.Type)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o755))
	return path
}

// Calls returns the interface names delegates in dir were run for, in order.
func Calls(t testing.TB, dir string) []string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, CallsFile))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Fields(string(data))
}

// Stdin returns the JSON a delegate of pluginType received for ifName.
func Stdin(t testing.TB, dir, pluginType, ifName string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, pluginType+"."+ifName+".stdin"))
	require.NoError(t, err)
	conf := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &conf))
	return conf
}

// Env returns the environment a delegate of pluginType ran with for ifName.
func Env(t testing.TB, dir, pluginType, ifName string) map[string]string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, pluginType+"."+ifName+".env"))
	require.NoError(t, err)
	env := map[string]string{}
	for _, line := range strings.Split(string(data), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			env[k] = v
		}
	}
	return env
}
