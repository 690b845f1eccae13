// Command analyze-filter prints the polyphase bank the sinc engine designs
// for a quality preset and ratio: per-phase DC gain and the prototype
// magnitude response.
//
// Usage:
//
//	analyze-filter --quality high --ratio 1.088435
//	analyze-filter --quality low --ratio 0.5 --points 64
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
