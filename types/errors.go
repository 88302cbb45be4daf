package types

import (
	"errors"
	"fmt"

	cniTypes "github.com/containernetworking/cni/pkg/types"
)

// MissingEnvironmentError is returned when a required CNI_* variable is unset.
type MissingEnvironmentError struct {
	Var string
}

func (e *MissingEnvironmentError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Var)
}

func (e *MissingEnvironmentError) Code() uint { return cniTypes.ErrInvalidEnvironmentVariables }

// UnsupportedCommandError is returned for a CNI_COMMAND this plugin does not handle.
type UnsupportedCommandError struct {
	Command string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unknown CNI command: %q", e.Command)
}

func (e *UnsupportedCommandError) Code() uint { return cniTypes.ErrInvalidEnvironmentVariables }

// MalformedConfigError is returned when stdin is not a valid multi-plugin config.
type MalformedConfigError struct {
	Err error
}

func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("malformed network configuration: %v", e.Err)
}

func (e *MalformedConfigError) Unwrap() error { return e.Err }

func (e *MalformedConfigError) Code() uint { return cniTypes.ErrDecodingFailure }

// UnresolvedPluginTypeError is returned when a fragment has no usable "type".
type UnresolvedPluginTypeError struct {
	Plugin string
	Reason string
}

func (e *UnresolvedPluginTypeError) Error() string {
	return fmt.Sprintf("plugin %q: cannot resolve plugin type: %s", e.Plugin, e.Reason)
}

func (e *UnresolvedPluginTypeError) Code() uint { return cniTypes.ErrInvalidNetworkConfig }

// PluginNotFoundError is returned when no search directory holds the plugin type.
type PluginNotFoundError struct {
	Plugin string
	Type   string
	Err    error
}

func (e *PluginNotFoundError) Error() string {
	return fmt.Sprintf("plugin %q: executable %q not found: %v", e.Plugin, e.Type, e.Err)
}

func (e *PluginNotFoundError) Unwrap() error { return e.Err }

func (e *PluginNotFoundError) Code() uint { return cniTypes.ErrInvalidNetworkConfig }

// DelegateFailedError is returned when a delegate exits non-zero or cannot be started.
type DelegateFailedError struct {
	Plugin string
	Err    error
}

func (e *DelegateFailedError) Error() string {
	return fmt.Sprintf("plugin %q failed: %v", e.Plugin, e.Err)
}

func (e *DelegateFailedError) Unwrap() error { return e.Err }

func (e *DelegateFailedError) Code() uint { return cniTypes.ErrInternal }

// MalformedDelegateResponseError is returned when a successful delegate prints an unparseable result.
type MalformedDelegateResponseError struct {
	Plugin string
	Err    error
}

func (e *MalformedDelegateResponseError) Error() string {
	return fmt.Sprintf("plugin %q returned a malformed result: %v", e.Plugin, e.Err)
}

func (e *MalformedDelegateResponseError) Unwrap() error { return e.Err }

func (e *MalformedDelegateResponseError) Code() uint { return cniTypes.ErrDecodingFailure }

// ToCNIError converts err into the CNI error document reported to the runtime.
func ToCNIError(err error) *cniTypes.Error {
	var cniErr *cniTypes.Error
	if errors.As(err, &cniErr) {
		return cniErr
	}

	var coded interface{ Code() uint }
	if errors.As(err, &coded) {
		return cniTypes.NewError(coded.Code(), err.Error(), "")
	}
	return cniTypes.NewError(cniTypes.ErrInternal, err.Error(), "")
}
