// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type navEntry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestTypedCacheRoundTrip(t *testing.T) {
	base := NewSimpleMemoryCache(time.Minute)
	defer base.Close()
	c := NewTypedCache[navEntry](base, time.Minute)
	ctx := context.Background()

	want := navEntry{ID: 7, Title: "Начало"}
	if err := c.Set(ctx, "nav:7", &want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get(ctx, "nav:7")
	if !ok {
		t.Fatal("Get miss after Set")
	}
	if *got != want {
		t.Errorf("Get = %+v, want %+v", *got, want)
	}

	if _, ok := c.Get(ctx, "nav:8"); ok {
		t.Error("Get hit for absent key")
	}
}

func TestTypedCacheGetOrSet(t *testing.T) {
	base := NewSimpleMemoryCache(time.Minute)
	defer base.Close()
	c := NewTypedCache[navEntry](base, time.Minute)
	ctx := context.Background()

	calls := 0
	load := func() (*navEntry, error) {
		calls++
		return &navEntry{ID: 1, Title: "Home"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrSet(ctx, "nav:1", load)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if got.ID != 1 {
			t.Errorf("got.ID = %d, want 1", got.ID)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}

func TestTypedCacheGetOrSetError(t *testing.T) {
	base := NewSimpleMemoryCache(time.Minute)
	defer base.Close()
	c := NewTypedCache[navEntry](base, time.Minute)

	wantErr := errors.New("load failed")
	_, err := c.GetOrSet(context.Background(), "nav:2", func() (*navEntry, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
