package types

// Command is the CNI operation requested through CNI_COMMAND.
type Command string

const (
	CommandAdd     Command = "ADD"
	CommandDel     Command = "DEL"
	CommandCheck   Command = "CHECK"
	CommandVersion Command = "VERSION"
)

const (
	// CNI environment variables
	EnvCommand     = "CNI_COMMAND"
	EnvContainerID = "CNI_CONTAINERID"
	EnvNetNS       = "CNI_NETNS"
	EnvIfName      = "CNI_IFNAME"
	EnvArgs        = "CNI_ARGS"
	EnvPath        = "CNI_PATH"
)

// requiredEnv is checked in this order, so the first missing variable is the one reported.
var requiredEnv = []string{EnvCommand, EnvContainerID, EnvNetNS, EnvIfName, EnvPath}

// ParseCommand maps a CNI_COMMAND value onto a known Command.
func ParseCommand(s string) (Command, error) {
	switch c := Command(s); c {
	case CommandAdd, CommandDel, CommandCheck, CommandVersion:
		return c, nil
	}
	return "", &UnsupportedCommandError{Command: s}
}

// IsTeardown reports whether delegate results are ignored for this command.
func (c Command) IsTeardown() bool {
	return c == CommandDel
}

func (c Command) String() string {
	return string(c)
}
