package main

import (
	"fmt"
	"os"

	"github.com/deplift/deplift/internal/cli"
	"github.com/deplift/deplift/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		msg := fmt.Sprintf("Error: %v", err)
		if style.UseColor() {
			msg = style.ErrorStyle.Render(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
