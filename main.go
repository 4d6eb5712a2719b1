package main

import "github.com/notargets/gohdg/cmd"

func main() {
	cmd.Execute()
}
