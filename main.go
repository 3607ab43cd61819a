package main

import "github.com/jsphweid/pianosight/cmd"

func main() {
	cmd.Execute()
}
