package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/httputil"
)

var privateNets = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"::1/128",
	"fc00::/7",
)

// IPAllowlist guards admin routes. Loopback and private-network clients are
// always allowed; anyone else must match a configured IP or CIDR.
type IPAllowlist struct {
	mu    sync.RWMutex
	ips   map[string]bool
	cidrs []*net.IPNet
}

// NewIPAllowlist builds an allowlist from plain IPs and CIDR blocks.
// Unparseable entries are logged and skipped.
func NewIPAllowlist(entries []string) *IPAllowlist {
	al := &IPAllowlist{}
	al.Refresh(entries)
	return al
}

// Middleware rejects clients that are not allowed with 403.
// Expects chi's RealIP middleware to have already resolved X-Forwarded-For into RemoteAddr.
func (al *IPAllowlist) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractIP(r.RemoteAddr)

		if al.IsAllowed(clientIP) {
			next.ServeHTTP(w, r)
			return
		}

		slog.Warn("IP not allowed",
			"ip", clientIP,
			"method", r.Method,
			"path", r.URL.Path,
		)
		httputil.Error(w, http.StatusForbidden, config.ErrorIPNotAllowed,
			"IP address "+clientIP+" is not in the allowlist")
	})
}

// IsAllowed checks whether the given IP should be granted access.
func (al *IPAllowlist) IsAllowed(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if containsIP(privateNets, ip) {
		return true
	}

	al.mu.RLock()
	defer al.mu.RUnlock()

	return al.ips[ip.String()] || containsIP(al.cidrs, ip)
}

// Refresh replaces the configured entries.
func (al *IPAllowlist) Refresh(entries []string) {
	ips := make(map[string]bool, len(entries))
	var cidrs []*net.IPNet

	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			_, n, err := net.ParseCIDR(e)
			if err != nil {
				slog.Warn("ignoring invalid allowlist CIDR", "entry", e, "error", err)
				continue
			}
			cidrs = append(cidrs, n)
			continue
		}
		ip := net.ParseIP(e)
		if ip == nil {
			slog.Warn("ignoring invalid allowlist IP", "entry", e)
			continue
		}
		ips[ip.String()] = true
	}

	al.mu.Lock()
	al.ips = ips
	al.cidrs = cidrs
	al.mu.Unlock()

	slog.Info("IP allowlist loaded", "ips", len(ips), "cidrs", len(cidrs))
}

// extractIP extracts the IP address from a host:port string.
// If there's no port, returns the string as-is.
func extractIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func containsIP(nets []*net.IPNet, ip net.IP) bool {
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func mustParseCIDRs(blocks ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(blocks))
	for _, b := range blocks {
		_, n, err := net.ParseCIDR(b)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}
