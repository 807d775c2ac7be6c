package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/bobg/blobstore"
	"github.com/bobg/blobstore/store"
)

var defaultConfig = map[string]interface{}{"type": "mem"}

func clientFromConfig(ctx context.Context, filename string) (blobstore.Client, error) {
	if filename == "" {
		return store.FromConfig(ctx, defaultConfig)
	}

	var conf map[string]interface{}
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening config file %s", filename)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	err = dec.Decode(&conf)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding config file %s", filename)
	}

	c, err := store.FromConfig(ctx, conf)
	return c, errors.Wrapf(err, "creating store from config file %s", filename)
}
