// ABOUTME: Entry point for the candidate CLI
// ABOUTME: Terminal client for the TalentID candidate portal

package main

import (
	"fmt"
	"os"

	"github.com/Talentid15/Candidate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
