// Copyright (C) 2025 ScyllaDB

package main

import (
	"fmt"
	"os"

	"github.com/scylladb/charybdis/pkg/utils"
)

func main() {
	status := 0

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		status = 1
	}

	utils.ExecuteFinalizers()
	os.Exit(status) //nolint:gocritic
}
