package main

import "github.com/timvw/webtrace/cmd"

func main() {
	cmd.Execute()
}
