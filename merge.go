package imgseg

// Merge coalesces every label in selected down to the smallest member
// of the set, rewriting labels in place, and returns labels. Fewer than
// two selected labels is a no-op. Duplicates in selected are harmless.
//
// Merge is a pure label rewrite: it does not re-check spatial
// connectivity, so it can fuse regions that do not touch. The minimum
// representative makes the operation deterministic and idempotent.
func Merge(labels []int32, selected []int32) []int32 {
	if len(selected) < 2 {
		return labels
	}
	target := selected[0]
	set := make(map[int32]struct{}, len(selected))
	for _, s := range selected {
		if s < target {
			target = s
		}
		set[s] = struct{}{}
	}
	if len(set) < 2 {
		return labels
	}
	for i, l := range labels {
		if _, ok := set[l]; ok {
			labels[i] = target
		}
	}
	return labels
}
