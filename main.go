package main

import "github.com/ardillaCHIKI/App2-taxi/cmd"

func main() {
	cmd.Execute()
}
