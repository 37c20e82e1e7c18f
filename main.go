package main

import "github.com/ValentinKolb/ipfinder/cmd"

func main() {
	cmd.Execute()
}
