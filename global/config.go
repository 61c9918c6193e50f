package global

var (
	Version = ""
)

// Configuration holds the parameters that are shared across commands.
type Configuration struct {
	// Directory is the repository root holding the ansible/ tree.
	Directory string
	LogLevel  string

	Ansible struct {
		Binary    string
		Inventory string
	}
}

var (
	Conf Configuration
)
