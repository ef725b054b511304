// main is the entry point for the sircast CLI.
package main

import (
	"fmt"
	"os"

	"github.com/davemolk/sircast/cmd"
	"github.com/davemolk/sircast/internal/iostore"
)

func main() {
	err := cmd.Execute()
	iostore.CloseStore()
	if err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
