package main

import "github.com/iksnae/kiro-session/cmd"

func main() {
	cmd.Execute()
}
