package main

import (
	"fmt"
	"os"

	"github.com/hypen-code/hypen-argocd-mcp/cmd/argocd-mcp-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
