// Command cuelint checks track definitions and console scripts.
//
//	cuelint -tracks prefabs -assets .
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/dynamicmusic/prefabs"
)

func main() {
	tracksDir := flag.String("tracks", "prefabs", "directory holding tracks/ and scripts/")
	assetsDir := flag.String("assets", "", "if set, also decode every referenced wave from this directory")
	builtin := flag.Bool("builtin", true, "include the built-in definitions")
	flag.Parse()

	src := prefabs.NewSource(*tracksDir)
	if *tracksDir == "" {
		src.Disk = nil
	}
	if !*builtin {
		src.Embedded = nil
	}

	l := &linter{src: src, out: os.Stdout}
	if *assetsDir != "" {
		l.assets = os.DirFS(*assetsDir)
	}
	if n := l.run(); n > 0 {
		fmt.Fprintf(os.Stderr, "%d problem(s)\n", n)
		os.Exit(1)
	}
}
