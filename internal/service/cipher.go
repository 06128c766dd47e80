package service

import (
	"fmt"
	"net/netip"
)

// RouteDest derives an IPv4 destination by adding the key to the source,
// octet by octet with wraparound.
func RouteDest(from, key netip.Addr) (netip.Addr, error) {
	if !from.Is4() || !key.Is4() {
		return netip.Addr{}, fmt.Errorf("expected IPv4 addresses, got %s and %s", from, key)
	}

	f, k := from.As4(), key.As4()

	var dest [4]byte
	for i := range dest {
		dest[i] = f[i] + k[i]
	}

	return netip.AddrFrom4(dest), nil
}

// RouteKey recovers the key from a source and its destination.
func RouteKey(from, to netip.Addr) (netip.Addr, error) {
	if !from.Is4() || !to.Is4() {
		return netip.Addr{}, fmt.Errorf("expected IPv4 addresses, got %s and %s", from, to)
	}

	f, d := from.As4(), to.As4()

	var key [4]byte
	for i := range key {
		key[i] = d[i] - f[i]
	}

	return netip.AddrFrom4(key), nil
}

// RouteDestV6 derives an IPv6 destination; the v6 scheme xors instead of
// adding, which makes it its own inverse.
func RouteDestV6(from, key netip.Addr) (netip.Addr, error) {
	if !from.Is6() || from.Is4() || !key.Is6() || key.Is4() {
		return netip.Addr{}, fmt.Errorf("expected IPv6 addresses, got %s and %s", from, key)
	}

	f, k := from.As16(), key.As16()

	var dest [16]byte
	for i := range dest {
		dest[i] = f[i] ^ k[i]
	}

	return netip.AddrFrom16(dest), nil
}

// RouteKeyV6 recovers the v6 key; identical to RouteDestV6 because xor is
// self-inverse.
func RouteKeyV6(from, to netip.Addr) (netip.Addr, error) {
	return RouteDestV6(from, to)
}
