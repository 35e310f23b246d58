/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/tasktrack/cmd"
	"github.com/josephgoksu/tasktrack/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
