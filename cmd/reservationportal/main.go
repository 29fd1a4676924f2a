package main

import "reservationportal/cmd"

func main() {
	cmd.Execute()
}
