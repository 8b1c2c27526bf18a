package main

import "github.com/ValentinKolb/echoprobe/cmd"

func main() {
	cmd.Execute()
}
