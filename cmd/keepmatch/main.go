// Command keepmatch applies keep rules to class pool dumps and reports what
// the rules keep.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
