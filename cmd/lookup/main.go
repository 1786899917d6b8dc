// Command lookup prints the federal representatives for a street address.
//
//	go run ./cmd/lookup "1600 Pennsylvania Ave NW, Washington, DC 20500"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"civic-bridge-be/pkg/legislators"

	"github.com/fatih/color"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "dataset fetch timeout")
	mirror := flag.String("mirror", "", "use only this dataset URL")
	flag.Parse()

	address := strings.Join(flag.Args(), " ")
	if address == "" {
		fmt.Fprintln(os.Stderr, "usage: lookup [-mirror url] <address>")
		os.Exit(2)
	}

	var mirrors []string
	if *mirror != "" {
		mirrors = []string{*mirror}
	}
	client := legislators.NewClient(mirrors, time.Hour)
	client.MirrorFailed = func(url string, err error) {
		color.Yellow("⚠ mirror %s failed: %v", url, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reps, err := client.Lookup(ctx, address)
	if err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
	if len(reps) == 0 {
		color.Red("✗ No representatives found for this address.")
		os.Exit(1)
	}

	color.Cyan("Representatives for %q", address)
	for _, rep := range reps {
		color.Green("• %s", rep.Name)
		fmt.Printf("  %s, %s (%s)\n", rep.Role, rep.Party, rep.ID)
		fmt.Printf("  %s\n", rep.MailingAddress)
		if rep.ContactURL != "" {
			fmt.Printf("  %s\n", rep.ContactURL)
		}
	}
}
