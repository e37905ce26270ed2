package main

import "github.com/Layr-Labs/slotledger/cmd"

func main() {
	cmd.Execute()
}
