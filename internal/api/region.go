package api

import (
	"fmt"
	"sort"
	"strings"
)

// PlatformRoute is a platform routing value such as EUW1.
type PlatformRoute string

// RegionalRoute is a regional routing value such as EUROPE.
type RegionalRoute string

const (
	Americas RegionalRoute = "AMERICAS"
	Asia     RegionalRoute = "ASIA"
	Europe   RegionalRoute = "EUROPE"
	SEA      RegionalRoute = "SEA"
)

var servers = map[string]PlatformRoute{
	"NA":   "NA1",
	"EUW":  "EUW1",
	"EUNE": "EUN1",
	"OCE":  "OC1",
	"KR":   "KR",
	"JP":   "JP1",
	"BR":   "BR1",
	"LAS":  "LA2",
	"LAN":  "LA1",
	"RU":   "RU",
	"TR":   "TR1",
	"SG":   "SG2",
	"PH":   "PH2",
	"VN":   "VN2",
	"TW":   "TW2",
	"TH":   "TH2",
	"MENA": "ME1",
	"PBE":  "PBE1",
}

var regionals = map[PlatformRoute]RegionalRoute{
	"NA1": Americas, "BR1": Americas, "LA1": Americas, "LA2": Americas, "PBE1": Americas,
	"KR": Asia, "JP1": Asia,
	"EUW1": Europe, "EUN1": Europe, "TR1": Europe, "RU": Europe, "ME1": Europe,
	"OC1": SEA, "SG2": SEA, "PH2": SEA, "VN2": SEA, "TW2": SEA, "TH2": SEA,
}

// ParseServer maps a server name (EUW, NA, ...) to its platform route.
func ParseServer(s string) (PlatformRoute, error) {
	route, ok := servers[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("invalid server '%s' (expected one of %s)", s, strings.Join(ServerNames(), ", "))
	}
	return route, nil
}

// ServerNames lists the accepted server names.
func ServerNames() []string {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Regional returns the regional route serving match-v5 for this platform.
func (p PlatformRoute) Regional() RegionalRoute {
	if r, ok := regionals[p]; ok {
		return r
	}
	return Americas
}

// AccountRegion returns the regional route used for account-v1 lookups,
// which is not served from SEA.
func (p PlatformRoute) AccountRegion() RegionalRoute {
	if r := p.Regional(); r != SEA {
		return r
	}
	return Asia
}

// Host returns the lowercase host prefix for API requests.
func (p PlatformRoute) Host() string { return strings.ToLower(string(p)) }

// Host returns the lowercase host prefix for API requests.
func (r RegionalRoute) Host() string { return strings.ToLower(string(r)) }
