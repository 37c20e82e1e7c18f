// Package hostinfo discovers the hostname and the local IPv4 address of the
// machine the process runs on.
package hostinfo

import (
	"fmt"
	"net"
	"os"
)

// Info describes the local host
type Info struct {
	Hostname string `json:"hostname"`
	IP       string `json:"ip"`
}

// String returns "Hostname: <name>, IP: <ip>"
func (i Info) String() string {
	return fmt.Sprintf("Hostname: %s, IP: %s", i.Hostname, i.IP)
}

// probeAddr is only used to select the outbound interface, no packet is sent
var probeAddr = "192.0.2.1:9"

// Lookup returns the hostname and the first IPv4 address it resolves to.
// If the hostname does not resolve to an IPv4 address, the address of the
// interface used for outbound traffic is returned instead.
func Lookup() (Info, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read hostname: %w", err)
	}

	if ip := resolveIPv4(hostname); ip != "" {
		return Info{Hostname: hostname, IP: ip}, nil
	}

	ip, err := outboundIPv4()
	if err != nil {
		return Info{Hostname: hostname}, fmt.Errorf("failed to find local ip for %s: %w", hostname, err)
	}
	return Info{Hostname: hostname, IP: ip}, nil
}

// resolveIPv4 returns the first IPv4 address of host or "" if there is none
func resolveIPv4(host string) string {
	ips, err := net.LookupIP(host)
	if err != nil {
		return ""
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}

// outboundIPv4 asks the kernel which local address a UDP socket would use
func outboundIPv4() (string, error) {
	conn, err := net.Dial("udp4", probeAddr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP.To4() == nil {
		return "", fmt.Errorf("no IPv4 address on outbound interface")
	}
	return addr.IP.String(), nil
}
