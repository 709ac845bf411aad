package pinot

import (
	"github.com/zhangyunhao116/fastrand"
)

// selectAddress picks one address uniformly at random. fastrand keeps its
// state per P, so concurrent callers never contend on a shared source.
// addresses must not be empty.
func selectAddress(addresses []string) string {
	return addresses[fastrand.Intn(len(addresses))]
}

// shuffledCopy returns a random permutation of items, leaving items untouched.
func shuffledCopy(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := fastrand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// distinct drops repeated entries and keeps first occurrences in order.
func distinct(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
