package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/pankaj-dahiya-devops/sweeper/internal/version"
)

const banner = `
  ____                                   
 / ___|_      _____  ___ _ __   ___ _ __ 
 \___ \ \ /\ / / _ \/ _ \ '_ \ / _ \ '__|
  ___) \ V  V /  __/  __/ |_) |  __/ |   
 |____/ \_/\_/ \___|\___| .__/ \___|_|   
                        |_|              
`

// printBanner writes the start-up banner and version line to w.
func printBanner(w io.Writer) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(w, red(banner))
	fmt.Fprintln(w, blue(fmt.Sprintf("AWS Sweeper (%s)", version.Version)))
}
