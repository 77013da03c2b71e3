// Package privacy holds helpers that keep personal data out of logs.
package privacy

import "net/netip"

// AnonymizeIP truncates an IP address before it is logged: IPv4 keeps the
// first three octets, IPv6 keeps the /48 prefix. Invalid input returns
// "unknown" rather than leaking the raw value.
func AnonymizeIP(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "unknown"
	}
	if addr.Is4() || addr.Is4In6() {
		p, err := addr.Unmap().Prefix(24)
		if err != nil {
			return "unknown"
		}
		return p.String()
	}
	p, err := addr.Prefix(48)
	if err != nil {
		return "unknown"
	}
	return p.String()
}
