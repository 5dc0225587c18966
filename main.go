/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/tavoas/tavoas/cmd"

func main() {
	cmd.Execute()
}
