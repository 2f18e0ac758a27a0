package main

import "github.com/dkellner/seamplan/cmd"

func main() {
	cmd.Execute()
}
