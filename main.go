package main

import "giftwise/cmd"

func main() {
	cmd.Execute()
}
