package main

import "github.com/theirongolddev/payplan/cmd"

func main() {
	cmd.Execute()
}
