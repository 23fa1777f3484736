package auth

// TokenStore persists one bearer token per server. Commands and the session
// store depend on it so tests can swap the OS keyring for a map.
type TokenStore interface {
	SaveToken(server, token string) error
	LoadToken(server string) (string, error)
	DeleteToken(server string) error
}

// Keyring is the TokenStore backed by the OS credential manager
type Keyring struct{}

// Default is the store used by the CLI
var Default TokenStore = Keyring{}

func (Keyring) SaveToken(server, token string) error { return SaveToken(server, token) }

func (Keyring) LoadToken(server string) (string, error) { return LoadToken(server) }

func (Keyring) DeleteToken(server string) error { return DeleteToken(server) }
