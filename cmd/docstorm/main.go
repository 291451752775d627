// Package main is the entry point of the docstorm command line tool.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:]))
}
