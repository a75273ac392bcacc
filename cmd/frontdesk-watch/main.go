package main

import "github.com/pfrederiksen/frontdesk-watch/internal/cli"

func main() {
	cli.Execute()
}
