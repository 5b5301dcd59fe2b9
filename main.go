/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/dayplan/cmd"
	"github.com/josephgoksu/dayplan/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
