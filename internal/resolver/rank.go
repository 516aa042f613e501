package resolver

import "strings"

// blockedHosts serve decoy or broken playlists and are never considered.
var blockedHosts = []string{
	"swiftplayers.com/stream/",
	"jonathansociallike.com",
}

// FilterBlocked drops URLs on hosts known to serve unplayable streams.
func FilterBlocked(urls []string) []string {
	var kept []string
	for _, u := range urls {
		if isBlocked(u) {
			continue
		}
		kept = append(kept, u)
	}
	return kept
}

func isBlocked(url string) bool {
	for _, host := range blockedHosts {
		if strings.Contains(url, host) {
			return true
		}
	}
	return false
}

// PickBest chooses among captured playlist URLs: an index playlist beats any
// other non-master playlist, which beats a master playlist. Within a class,
// the earliest-captured URL wins.
func PickBest(urls []string) (string, bool) {
	if len(urls) == 0 {
		return "", false
	}

	for _, u := range urls {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "index") && !strings.Contains(lower, "master") {
			return u, true
		}
	}

	for _, u := range urls {
		if !strings.Contains(strings.ToLower(u), "master") {
			return u, true
		}
	}

	// Only master playlists left; better than nothing.
	return urls[0], true
}
