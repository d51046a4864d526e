package main

import "github.com/shiblon/greendo/cmd"

func main() {
	cmd.Execute()
}
