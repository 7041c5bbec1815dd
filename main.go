package main

import "github.com/saadjs/pawfuel-cli/cmd/pawfuel"

func main() {
	pawfuel.Execute()
}
