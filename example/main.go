// Example program demonstrating the bumpversion library API.
//
// Run from a project directory carrying a .bumpversion.toml:
//
//	go run ./example/
package main

import (
	"fmt"
	"log"
	"sort"

	"go-bumpversion/pkg/bumpversion"
)

func main() {
	mgr, err := bumpversion.New(bumpversion.Options{
		Path:   ".",
		DryRun: true,
	})
	if err != nil {
		log.Fatalf("loading configuration failed: %v", err)
	}

	printVariables(mgr.Variables())

	for _, component := range []string{"major", "minor", "patch"} {
		current, next, err := mgr.PlannedBump(component)
		if err != nil {
			log.Fatalf("planning %s bump failed: %v", component, err)
		}
		fmt.Printf("bump %-8s %s -> %s\n", component, current, next)
	}
}

func printVariables(vars map[string]string) {
	fmt.Println("=== Variables ===")

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-20s %s\n", k, vars[k])
	}
	fmt.Println()
}
