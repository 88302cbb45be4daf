package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	cniTypes "github.com/containernetworking/cni/pkg/types"
	"github.com/containernetworking/cni/pkg/version"
	"github.com/samber/lo"
)

// PluginConf is the opaque configuration fragment handed to one delegate.
// Only its "type" key is interpreted here. Numbers are kept as json.Number so
// they are passed on with their original text.
type PluginConf map[string]interface{}

// NetConf is the top-level multi-plugin configuration read from stdin.
type NetConf struct {
	CNIVersion string `json:"cniVersion"`
	Type       string `json:"type"`
	Name       string `json:"name"`

	// Filter names the plugins whose addresses are left out of the result.
	Filter []string `json:"filter"`

	// Plugins maps the interface name each delegate configures to its fragment.
	Plugins map[string]PluginConf `json:"plugins"`

	DNS *cniTypes.DNS `json:"dns,omitempty"`
}

// LoadNetConf parses the multi-plugin configuration.
func LoadNetConf(data []byte) (*NetConf, error) {
	n := &NetConf{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(n); err != nil {
		return nil, fmt.Errorf("failed to load netconf: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to load netconf: trailing data after config")
	}

	if n.CNIVersion != "" {
		if _, err := version.GreaterThanOrEqualTo(n.CNIVersion, "0.1.0"); err != nil {
			return nil, fmt.Errorf("invalid cniVersion %q: %w", n.CNIVersion, err)
		}
	}

	if n.Filter == nil {
		n.Filter = []string{}
	}
	if n.Plugins == nil {
		n.Plugins = map[string]PluginConf{}
	}
	for name, conf := range n.Plugins {
		if conf == nil {
			return nil, fmt.Errorf("plugin %q has no configuration", name)
		}
	}

	return n, nil
}

// PluginNames returns the configured plugin names in the order they are invoked.
func (n *NetConf) PluginNames() []string {
	names := lo.Keys(n.Plugins)
	sort.Strings(names)
	return names
}

// IsFiltered reports whether the addresses of the named plugin are dropped.
func (n *NetConf) IsFiltered(name string) bool {
	return lo.Contains(n.Filter, name)
}
