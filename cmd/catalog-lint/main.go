package main

import (
	"flag"
	"fmt"
	"os"

	"applytrak/catalog"
)

func main() {
	verbose := flag.Bool("v", false, "print every achievement in evaluation order")
	flag.Parse()

	cat, err := catalog.Default()
	if err != nil {
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}

	seen := map[string]bool{}
	exitCode := 0
	for _, a := range cat.TopoOrder() {
		for _, dep := range a.Dependencies {
			if !seen[dep] {
				fmt.Printf("%s: dependency %q appears later in evaluation order\n", a.ID, dep)
				exitCode = 1
			}
		}
		seen[a.ID] = true
		if *verbose {
			fmt.Printf("%-28s %-10s %-10s %4d XP  deps=%v\n", a.ID, a.Tier, a.Rarity, a.XPReward, a.Dependencies)
		}
	}

	if exitCode == 0 {
		fmt.Printf("catalog OK: %d achievements\n", cat.Len())
	}
	os.Exit(exitCode)
}
