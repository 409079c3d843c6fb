package client

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ParseHostSpec parses "[user@]address[:port]" into a HostConfig
func ParseHostSpec(spec string) (*HostConfig, error) {
	host := &HostConfig{Name: spec}

	rest := spec
	if at := strings.LastIndex(rest, "@"); at != -1 {
		host.User = rest[:at]
		rest = rest[at+1:]
	}

	if h, p, err := net.SplitHostPort(rest); err == nil {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid port in '%s'", spec)
		}
		host.Port = port
		rest = h
	}

	if rest == "" {
		return nil, fmt.Errorf("invalid host '%s'", spec)
	}
	host.Address = rest
	return host, nil
}
