package lru

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bobg/blobstore"
	"github.com/bobg/blobstore/multibuf"
	"github.com/bobg/blobstore/store/mem"
	"github.com/bobg/blobstore/testutil"
)

func TestClient(t *testing.T) {
	testutil.Client(context.Background(), t, func() blobstore.Client {
		c, err := New(mem.New(), 1000)
		if err != nil {
			t.Fatal(err)
		}
		return c
	})
}

func TestEviction(t *testing.T) {
	ctx := context.Background()
	c, err := New(mem.New(), 2)
	if err != nil {
		t.Fatal(err)
	}

	id, err := c.Put(ctx, multibuf.New([]byte("cached")))
	if err != nil {
		t.Fatal(err)
	}

	// Prime the cache.
	if _, err := c.Metadata(ctx, id); err != nil {
		t.Fatal(err)
	}
	if !c.c.Contains(id) {
		t.Fatal("metadata not cached")
	}

	if err := c.Tag(ctx, id, "fresh"); err != nil {
		t.Fatal(err)
	}
	md, err := c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	want := blobstore.Metadata{Size: 6, Tags: []string{"fresh"}}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("after Tag, mismatch (-want +got):\n%s", diff)
	}

	// Callers must not be able to change the cached value.
	md.Tags[0] = "scribbled"
	md, err = c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("after caller mutation, mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.Put(ctx, multibuf.New([]byte("cached"))); err != nil {
		t.Fatal(err)
	}
	md, err = c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(md.Tags) != 0 {
		t.Errorf("got tags %q after re-put, want none", md.Tags)
	}
}

func TestSlowPutDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	c, err := New(mem.New(), 10)
	if err != nil {
		t.Fatal(err)
	}

	var (
		started = make(chan struct{})
		release = make(chan struct{})
		putDone = make(chan error, 1)
		sent    bool
	)
	src := blobstore.ChunkFunc(func() []byte {
		if sent {
			return nil
		}
		sent = true
		close(started)
		<-release
		return []byte("slow")
	})
	go func() {
		_, err := c.Put(ctx, src)
		putDone <- err
	}()
	<-started

	mdDone := make(chan error, 1)
	go func() {
		_, err := c.Metadata(ctx, 42)
		mdDone <- err
	}()
	select {
	case err := <-mdDone:
		if err != nil {
			t.Error(err)
		}
	case <-time.After(5 * time.Second):
		t.Error("Metadata on another id waited for a Put still draining its source")
	}

	tagDone := make(chan error, 1)
	go func() {
		tagDone <- c.Tag(ctx, 43, "x")
	}()
	select {
	case err := <-tagDone:
		if err != nil {
			t.Error(err)
		}
	case <-time.After(5 * time.Second):
		t.Error("Tag on another id waited for a Put still draining its source")
	}

	close(release)
	if err := <-putDone; err != nil {
		t.Fatal(err)
	}
	md, err := c.Metadata(ctx, blobstore.Sum([]byte("slow")))
	if err != nil {
		t.Fatal(err)
	}
	if md.Size != 4 {
		t.Errorf("got size %d, want 4", md.Size)
	}
}
