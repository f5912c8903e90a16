// Package config loads the resolver defaults a caller of this module's
// packages wants pre-populated instead of hand-building Options/Transport
// values per call: default timeout, EDNS payload size, preferred
// transport, and a short list of known servers. It follows the same
// load-a-struct-from-YAML shape as the ancestor server's
// cmd/dnsscience-grpc/config.go; the CLI argument-parsing surface that
// would consume this file is out of scope per spec.md §1.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dnsscience/dnsq/internal/transport"
)

// Server is one named upstream resolver entry in the config file.
type Server struct {
	Name      string `yaml:"name"`
	Host      string `yaml:"host"`
	Transport string `yaml:"transport"` // udp, tcp, dot, doh-https, doh-http
}

// Defaults is the top-level resolver defaults file shape.
type Defaults struct {
	Timeout     time.Duration `yaml:"timeout"`
	EDNSSize    uint16        `yaml:"edns_size"`
	Transport   string        `yaml:"transport"`
	DO          bool          `yaml:"dnssec_ok"`
	Servers     []Server      `yaml:"servers"`
}

// DefaultDefaults returns the hardcoded fallback used when no config file
// is supplied, mirroring query.DefaultEDNSSize and a conservative
// per-query timeout.
func DefaultDefaults() Defaults {
	return Defaults{
		Timeout:   5 * time.Second,
		EDNSSize:  1232,
		Transport: "udp",
	}
}

// Load reads and parses a YAML defaults file at path.
func Load(path string) (Defaults, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, err
	}
	d := DefaultDefaults()
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Defaults{}, err
	}
	return d, nil
}

// TransportKind maps the config file's transport mnemonic to a
// transport.Kind, the closed set spec §9 Design Notes describes.
func TransportKind(name string) (transport.Kind, error) {
	switch name {
	case "", "udp":
		return transport.KindUDP, nil
	case "tcp":
		return transport.KindTCP, nil
	case "dot":
		return transport.KindDoT, nil
	case "doh-https":
		return transport.KindDoHHTTPS, nil
	case "doh-http":
		return transport.KindDoHHTTP, nil
	default:
		return 0, fmt.Errorf("config: unknown transport %q", name)
	}
}

// Lookup finds a named server entry, if any.
func (d Defaults) Lookup(name string) (Server, bool) {
	for _, s := range d.Servers {
		if s.Name == name {
			return s, true
		}
	}
	return Server{}, false
}
