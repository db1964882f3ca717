// Prints a bcrypt digest for seeding accounts by hand:
//
//	go run scripts/genhash.go <password>
//
// Uses the same hasher (and cost) as the server, so seeded digests verify.
package main

import (
	"fmt"
	"os"

	"github.com/bscheucher/keeper-server/internal/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}
	h, err := auth.NewHasher().Hash(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "genhash: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(h)
}
