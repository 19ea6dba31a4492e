package main

import "salon-booking/cmd/cli"

func main() {
	cli.Execute()
}
