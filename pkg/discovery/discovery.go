// Package discovery turns a device handle into the address the controller
// runtime connects to.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
)

const (
	DefaultHost = "192.168.42.1"
	DefaultPort = 44444
)

var ErrNoAddress = errors.New("discovery: no address for device")

// Device is a discovered (or configured) vehicle.
type Device struct {
	Name string
	Host string
	Port int
}

// Default is the vehicle's own access point address.
func Default() Device {
	return Device{Name: "bebop", Host: DefaultHost, Port: DefaultPort}
}

// Resolver resolves a Device to "ip:port".
type Resolver interface {
	Resolve(ctx context.Context, d Device) (string, error)
}

// NetResolver resolves host names with net.Resolver.
type NetResolver struct {
	Resolver *net.Resolver
}

func (r NetResolver) Resolve(ctx context.Context, d Device) (string, error) {
	host, port := d.Host, d.Port
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	if port < 0 || port > 65535 {
		return "", fmt.Errorf("discovery: invalid port %d for %q", port, d.Name)
	}
	if ip := net.ParseIP(host); ip != nil {
		return net.JoinHostPort(ip.String(), strconv.Itoa(port)), nil
	}

	resolver := r.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	addrs, err := resolver.LookupHost(ctx, host)
	if err != nil {
		return "", fmt.Errorf("discovery: lookup %q: %w", host, err)
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoAddress, host)
	}
	return net.JoinHostPort(addrs[0], strconv.Itoa(port)), nil
}
