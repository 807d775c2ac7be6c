// Command blobstore drives an in-process blob store from the command line.
//
// The store lives only as long as the command,
// so each invocation starts empty.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/bobg/subcmd"

	"github.com/bobg/blobstore"
	_ "github.com/bobg/blobstore/store/logging"
	_ "github.com/bobg/blobstore/store/lru"
	_ "github.com/bobg/blobstore/store/mem"
)

type maincmd struct {
	c   blobstore.Client
	out io.Writer
}

func main() {
	config := flag.String("config", "", "path to JSON config file (default: in-memory store)")
	flag.Parse()

	ctx := context.Background()

	c, err := clientFromConfig(ctx, *config)
	if err != nil {
		log.Fatal(err)
	}

	err = subcmd.Run(ctx, maincmd{c: c, out: os.Stdout}, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
}

func (c maincmd) Subcmds() map[string]subcmd.Subcmd {
	return map[string]subcmd.Subcmd{
		"demo": {F: withFlagSet("demo", c.demo)},
		"put":  {F: withFlagSet("put", c.put)},
	}
}

// withFlagSet adapts a subcommand that parses its own flags
// to the subcmd.Subcmd function form, giving it a fresh FlagSet.
func withFlagSet(name string, f func(context.Context, *flag.FlagSet, []string) error) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		return f(ctx, flag.NewFlagSet(name, flag.ContinueOnError), args)
	}
}
