package main

import "github.com/mcoot/playerbase/internal/cli"

func main() {
	cli.Execute()
}
