package main

import "github.com/hagbad-hub/ayuuto-services/cmd"

func main() {
	cmd.Execute()
}
