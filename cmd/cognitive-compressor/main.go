// cognitive-compressor generates timestamped, integrity-checked instances of
// cognitive-function descriptors.
//
// Usage:
//
//	cognitive-compressor list [--output plain|table|markdown]
//	cognitive-compressor get <name> [--save|-s]
//	cognitive-compressor verify <trace-file> [--descriptor]
//	cognitive-compressor traces [--output plain|table|markdown]
package main

import (
	"context"
	"os"

	"cogcompress/internal/instance"
)

func main() {
	a := &app{clock: instance.SystemClock}
	os.Exit(execute(context.Background(), a, os.Args[1:], os.Stdout, os.Stderr))
}
