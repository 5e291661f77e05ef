package main

import "github.com/rskv-p/fpmine/cmd"

func main() {
	cmd.Execute()
}
