// Package ohash provides the splitmix64-class avalanche mixer used ahead of
// every open-addressed int64-keyed table in the pipeline (Stage C's
// region-keyed survivor map and GroupDeduper's canonical-key table), plus
// the sentinel-zero remap both of those tables need since 0 is the "empty
// slot" marker of the underlying brentp/intintmap table.
package ohash

// sentinelReplacement is substituted for any key that mixes to exactly 0,
// since intintmap.Map reserves 0 as its "empty" sentinel. It is the 64-bit
// golden-ratio constant. The mixer is a bijection, so the one input that
// mixes to this value and the input 0 both map to it.
const sentinelReplacement = 0x9e3779b97f4a7c15

// Mix64 applies a splitmix64-class avalanche step to z, then remaps a
// result of exactly 0 to a fixed nonzero constant so callers can use the
// output directly as a key in a table that treats 0 as "empty".
func Mix64(z int64) int64 {
	u := uint64(z)
	u ^= u >> 33
	u *= 0xff51afd7ed558ccd
	u ^= u >> 33
	u *= 0xc4ceb9fe1a85ec53
	u ^= u >> 33
	if u == 0 {
		u = sentinelReplacement
	}
	return int64(u)
}
