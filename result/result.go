package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	cniTypes "github.com/containernetworking/cni/pkg/types"
	types040 "github.com/containernetworking/cni/pkg/types/040"
)

// Version is the cniVersion of every result this plugin prints.
const Version = types040.ImplementedSpecVersion

// Result is both the shape a delegate answers with and the merged answer of
// the meta-plugin. Lists are always present in the JSON, even when empty.
type Result struct {
	CNIVersion string                `json:"cniVersion"`
	Interfaces []*types040.Interface `json:"interfaces"`
	IPs        []*types040.IPConfig  `json:"ips"`
	Routes     []*cniTypes.Route     `json:"routes"`
}

// NewResult returns an empty result for cniVersion.
func NewResult(cniVersion string) *Result {
	return &Result{
		CNIVersion: cniVersion,
		Interfaces: []*types040.Interface{},
		IPs:        []*types040.IPConfig{},
		Routes:     []*cniTypes.Route{},
	}
}

// ParseResult decodes the stdout of a delegate, which must be a JSON object.
func ParseResult(data []byte) (*Result, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errors.New("result is null, expected an object")
	}
	r := &Result{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

// OutputResult writes result as a single JSON line.
func OutputResult[T any](w io.Writer, result T) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result to json failed: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write result failed: %w", err)
	}
	return nil
}
