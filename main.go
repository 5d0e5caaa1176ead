package main

import "github.com/bcdannyboy/dhedge/cmd"

func main() {
	cmd.Execute()
}
