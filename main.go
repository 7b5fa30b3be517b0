package main

import "github.com/gaurav-prasanna/webfetch/cmd"

func main() {
	cmd.Execute()
}
