package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Kinetic.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal-to-indigo gradient
	s1 := termenv.String(" _  ___            _   _      ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("| |/ (_)_ __   ___| |_(_) ___ ").Foreground(p.Color("#38bdf8"))
	s3 := termenv.String("| ' /| | '_ \\ / _ \\ __| |/ __|").Foreground(p.Color("#60a5fa"))
	s4 := termenv.String("| . \\| | | | |  __/ |_| | (__ ").Foreground(p.Color("#818cf8"))
	s5 := termenv.String("|_|\\_\\_|_| |_|\\___|\\__|_|\\___|").Foreground(p.Color("#a78bfa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
