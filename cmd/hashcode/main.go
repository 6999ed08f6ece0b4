// Command hashcode prints the values to put in ADMIN_CODE_HASH or
// DEVELOPER_CODE_HASH so the plain code never has to live in the environment.
//
//	go run ./cmd/hashcode <code>
package main

import (
	"fmt"
	"os"

	"docgentor-be/pkg/accesscode"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		color.Red("usage: hashcode <code>")
		os.Exit(2)
	}
	code := os.Args[1]

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		color.Red("bcrypt failed: %v", err)
		os.Exit(1)
	}

	label := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("%s %s\n", label("sha256:"), accesscode.HashSHA256(code))
	fmt.Printf("%s %s\n", label("bcrypt:"), string(hash))
	color.Yellow("Either value works; keep the plain code out of the deployment.")
}
