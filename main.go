package main

import "github.com/rmorpir/ampaconta/cmd"

func main() {
	cmd.Execute()
}
