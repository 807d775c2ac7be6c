package mem

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bobg/blobstore"
	"github.com/bobg/blobstore/multibuf"
	"github.com/bobg/blobstore/testutil"
)

func TestStore(t *testing.T) {
	testutil.Client(context.Background(), t, func() blobstore.Client { return New() })
}

func TestMaxSize(t *testing.T) {
	ctx := context.Background()
	s := New(MaxSize(4))

	id, err := s.Put(ctx, multibuf.New([]byte("ab"), []byte("cd")))
	if err != nil {
		t.Fatalf("content at the limit: %s", err)
	}
	md, err := s.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if md.Size != 4 {
		t.Errorf("got size %d, want 4", md.Size)
	}

	_, err = s.Put(ctx, multibuf.New([]byte("ab"), []byte("cde")))
	if !errors.Is(err, blobstore.ErrTooLarge) {
		t.Errorf("got error %v, want ErrTooLarge", err)
	}
	if s.Len() != 1 {
		t.Errorf("got %d blobs after rejected put, want 1", s.Len())
	}
}

func TestStrict(t *testing.T) {
	ctx := context.Background()
	s := New(Strict(true))

	err := s.Tag(ctx, 17, "x")
	if !errors.Is(err, blobstore.ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
	if s.Len() != 0 {
		t.Errorf("strict tag created %d blobs", s.Len())
	}

	id, err := s.Put(ctx, multibuf.New([]byte("hello")))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Tag(ctx, id, "x"); err != nil {
		t.Fatal(err)
	}
	md, err := s.Metadata(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(md.Tags) != 1 || md.Tags[0] != "x" {
		t.Errorf("got tags %q, want [x]", md.Tags)
	}
}

func TestChunksCopied(t *testing.T) {
	ctx := context.Background()
	s := New()

	chunk := []byte("abcd")
	id, err := s.Put(ctx, multibuf.New(chunk))
	if err != nil {
		t.Fatal(err)
	}
	copy(chunk, "wxyz")

	s.mu.Lock()
	got := string(s.blobs[id].data)
	s.mu.Unlock()
	if got != "abcd" {
		t.Errorf("stored content changed to %q after caller reused its chunk", got)
	}
}

func TestConcurrent(t *testing.T) {
	var (
		ctx = context.Background()
		s   = New()
		wg  sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Put(ctx, multibuf.New([]byte(fmt.Sprintf("blob %d", i%5))))
			if err != nil {
				t.Error(err)
				return
			}
			if err := s.Tag(ctx, id, fmt.Sprintf("tag%d", i)); err != nil {
				t.Error(err)
			}
			if _, err := s.Metadata(ctx, id); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if s.Len() != 5 {
		t.Errorf("got %d blobs, want 5", s.Len())
	}
}
