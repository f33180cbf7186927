// SPDX-License-Identifier: MIT
package main

import (
	"os"

	"github.com/worshipwaves/WDweb-sub000/cmd"
	"github.com/worshipwaves/WDweb-sub000/internal/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
