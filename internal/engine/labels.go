package engine

import "fmt"

// labelFor formats the fixed event-label tokens the RNG contract requires.
// These strings must match verbatim across client and server
// implementations.
func labelFor(prefix string, id int) string {
	return fmt.Sprintf("%s_%d", prefix, id)
}

func labelPair(prefix string, i, j int) string {
	return fmt.Sprintf("%s_%d_%d", prefix, i, j)
}

func collLabel(i, j, side int) string {
	return fmt.Sprintf("coll_%d_%d_%d", i, j, side)
}
