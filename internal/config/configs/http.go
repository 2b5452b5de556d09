package configs

import "fmt"

// HTTP defines configuration for the HTTP server. Host is empty by default
// so the server binds on all interfaces; Port defaults to 8080.
type HTTP struct {
	// Host is the interface the HTTP server binds to.
	Host string `env:"HOST" envDefault:""`
	// Port is the TCP port the HTTP server will listen on.
	Port uint16 `env:"PORT" envDefault:"8080"`
}

// Addr returns the host:port listen address.
func (c HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
