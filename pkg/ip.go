package pkg

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var ErrNoClientAddress = errors.New("client address not found")

// ParseTrustedProxies accepts single addresses ("10.0.0.1") and CIDR ranges ("10.0.0.0/8").
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("parse trusted proxy [%s]: %w", entry, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("parse trusted proxy [%s]: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// ReadUserIP returns the client address of the request. The peer address is used
// unless the peer is one of the trusted proxies; only then are X-Forwarded-For
// (rightmost untrusted hop) and X-Real-Ip consulted.
func ReadUserIP(r *http.Request, trustedProxies []netip.Prefix) (string, error) {
	peer := stripPort(strings.TrimSpace(r.RemoteAddr))
	if peer == "" {
		return "", ErrNoClientAddress
	}
	if !isTrusted(peer, trustedProxies) {
		return peer, nil
	}

	// X-Forwarded-For: client, proxy1, proxy2
	var hops []string
	for _, header := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(header, ",") {
			if hop = stripPort(strings.TrimSpace(hop)); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	for i := len(hops) - 1; i >= 0; i-- {
		if _, err := netip.ParseAddr(hops[i]); err != nil {
			return peer, nil
		}
		if !isTrusted(hops[i], trustedProxies) {
			return hops[i], nil
		}
	}
	if len(hops) > 0 {
		return hops[0], nil
	}

	if realIP := stripPort(strings.TrimSpace(r.Header.Get("X-Real-Ip"))); realIP != "" {
		if _, err := netip.ParseAddr(realIP); err == nil {
			return realIP, nil
		}
	}

	return peer, nil
}

func isTrusted(ip string, trustedProxies []netip.Prefix) bool {
	if len(trustedProxies) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}
