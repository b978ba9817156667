/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/larderdb/larder/cmd/larder/cmd"
)

func main() {
	cmd.Execute()
}
