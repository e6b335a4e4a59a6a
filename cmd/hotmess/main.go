// Command hotmess is a terminal client for the Hot Mess Coach chat backend.
package main

import "github.com/diogo/hotmess/internal/commands"

func main() {
	commands.Execute()
}
