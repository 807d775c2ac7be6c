// Package testutil contains checks that any blobstore.Client implementation should pass.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"

	"github.com/bobg/blobstore"
	"github.com/bobg/blobstore/multibuf"
)

// Client runs all the checks in this package against fresh clients from newClient.
func Client(ctx context.Context, t *testing.T, newClient func() blobstore.Client) {
	t.Run("determinism", func(t *testing.T) { Determinism(ctx, t, newClient()) })
	t.Run("assembly", func(t *testing.T) { Assembly(ctx, t, newClient()) })
	t.Run("tags", func(t *testing.T) { Tags(ctx, t, newClient()) })
	t.Run("missing", func(t *testing.T) { Missing(ctx, t, newClient()) })
	t.Run("replace", func(t *testing.T) { Replace(ctx, t, newClient()) })
	t.Run("empty", func(t *testing.T) { Empty(ctx, t, newClient()) })
}

// Determinism checks that equal content, however it is chunked,
// always gets the same id, and that the id is blobstore.Sum of the content.
func Determinism(ctx context.Context, t *testing.T, c blobstore.Client) {
	f := func(data []byte, cut uint8) bool {
		n := 0
		if len(data) > 0 {
			n = int(cut) % len(data)
		}
		id1, err := c.Put(ctx, multibuf.New(data))
		if err != nil {
			t.Fatal(err)
		}
		id2, err := c.Put(ctx, multibuf.New(data[:n], data[n:]))
		if err != nil {
			t.Fatal(err)
		}
		if id1 != id2 {
			t.Logf("ids differ for %d-byte content cut at %d: %s vs %s", len(data), n, id1, id2)
			return false
		}
		if want := blobstore.Sum(data); id1 != want {
			t.Logf("got id %s, want %s", id1, want)
			return false
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// Assembly checks that discontiguous chunks are stored as their concatenation.
func Assembly(ctx context.Context, t *testing.T, c blobstore.Client) {
	cases := []struct {
		chunks []string
		want   string
	}{
		{chunks: []string{"ab", "cd"}, want: "abcd"},
		{chunks: []string{"fearless", "concurrency"}, want: "fearlessconcurrency"},
		{chunks: []string{"x"}, want: "x"},
		{chunks: []string{"a", "b", "c", "d", "e"}, want: "abcde"},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%02d", i+1), func(t *testing.T) {
			var chunks [][]byte
			for _, s := range tc.chunks {
				chunks = append(chunks, []byte(s))
			}
			id, err := c.Put(ctx, multibuf.New(chunks...))
			if err != nil {
				t.Fatal(err)
			}
			if want := blobstore.Sum([]byte(tc.want)); id != want {
				t.Errorf("got id %s, want %s", id, want)
			}
			md, err := c.Metadata(ctx, id)
			if err != nil {
				t.Fatal(err)
			}
			if md.Size != uint64(len(tc.want)) {
				t.Errorf("got size %d, want %d", md.Size, len(tc.want))
			}
		})
	}
}

// Tags checks that tags form a set:
// each tag appears once no matter how many times it is added.
func Tags(ctx context.Context, t *testing.T, c blobstore.Client) {
	id, err := c.Put(ctx, multibuf.New([]byte("tagged")))
	if err != nil {
		t.Fatal(err)
	}
	for _, tag := range []string{"b", "a", "b", "c", "a", "a"} {
		if err := c.Tag(ctx, id, tag); err != nil {
			t.Fatal(err)
		}
	}
	md, err := c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	want := blobstore.Metadata{Size: 6, Tags: []string{"a", "b", "c"}}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// Missing checks that an unknown id has zero metadata,
// and that tagging an unknown id creates an empty blob carrying the tag.
func Missing(ctx context.Context, t *testing.T, c blobstore.Client) {
	const id = blobstore.BlobID(0x1a2b3c)

	md, err := c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if md.Size != 0 || len(md.Tags) != 0 {
		t.Errorf("got %+v for unknown id, want zero metadata", md)
	}

	if err := c.Tag(ctx, id, "x"); err != nil {
		t.Fatal(err)
	}
	md, err = c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	want := blobstore.Metadata{Tags: []string{"x"}}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// Replace checks that putting the same content again discards its tags.
func Replace(ctx context.Context, t *testing.T, c blobstore.Client) {
	content := []byte("replace me")

	id, err := c.Put(ctx, multibuf.New(content))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Tag(ctx, id, "x"); err != nil {
		t.Fatal(err)
	}
	md, err := c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(md.Tags) != 1 {
		t.Fatalf("got tags %q before replacement, want [x]", md.Tags)
	}

	id2, err := c.Put(ctx, multibuf.New(content))
	if err != nil {
		t.Fatal(err)
	}
	if id2 != id {
		t.Fatalf("got id %s on second put, want %s", id2, id)
	}
	md, err = c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(md.Tags) != 0 {
		t.Errorf("got tags %q after replacement, want none", md.Tags)
	}
	if md.Size != uint64(len(content)) {
		t.Errorf("got size %d, want %d", md.Size, len(content))
	}
}

// Empty checks that an empty chunk source is a valid upload.
func Empty(ctx context.Context, t *testing.T, c blobstore.Client) {
	id, err := c.Put(ctx, multibuf.New())
	if err != nil {
		t.Fatal(err)
	}
	if want := blobstore.Sum(nil); id != want {
		t.Errorf("got id %s, want %s", id, want)
	}
	if err := c.Tag(ctx, id, "empty"); err != nil {
		t.Fatal(err)
	}
	md, err := c.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	want := blobstore.Metadata{Tags: []string{"empty"}}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
