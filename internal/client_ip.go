package internal

import (
	"net"
	"net/http"
	"strings"
)

// TrustedProxies lists networks whose forwarding headers are believed.
type TrustedProxies struct {
	networks []*net.IPNet
}

func NewTrustedProxies(cidrs []string) (*TrustedProxies, error) {
	networks := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, err
		}
		networks = append(networks, network)
	}
	return &TrustedProxies{networks: networks}, nil
}

func (t *TrustedProxies) trusted(ip net.IP) bool {
	if t == nil || ip == nil {
		return false
	}
	for _, network := range t.networks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		// maybe a raw IP without port
		return remoteAddr
	}
	return host
}

// ClientIP returns the address of the client. X-Forwarded-For and X-Real-IP
// are honored only when the direct peer is a trusted proxy.
func (t *TrustedProxies) ClientIP(r *http.Request) string {
	host := remoteHost(r.RemoteAddr)
	if !t.trusted(net.ParseIP(host)) {
		return host
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(realIP) != nil {
		return realIP
	}
	return host
}

// Scheme reports https for TLS connections or trusted proxies forwarding https.
func (t *TrustedProxies) Scheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if t.trusted(net.ParseIP(remoteHost(r.RemoteAddr))) && strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		return "https"
	}
	return "http"
}
