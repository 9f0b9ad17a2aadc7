package main

import "fmt"

// version is the demo application's release version.
const version = "0.1.0"

func printVersion() {
	fmt.Printf("microbus %s\n", version)
}
