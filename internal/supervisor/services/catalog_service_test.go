// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/shelfwise/internal/catalog"
	"github.com/tomtom215/shelfwise/internal/loader"
	"github.com/tomtom215/shelfwise/internal/recommend"
)

// countingSource wraps a Source and counts Load calls, optionally failing.
type countingSource struct {
	inner loader.Source
	err   error
	calls atomic.Int32
}

func (c *countingSource) Load(ctx context.Context) (catalog.RawTable, error) {
	c.calls.Add(1)
	if c.err != nil {
		return catalog.RawTable{}, c.err
	}
	return c.inner.Load(ctx)
}

func (c *countingSource) String() string { return "counting" }

func productTable() catalog.RawTable {
	return catalog.RawTable{
		Columns: []string{"ID", "ProdID", "Name", "Brand", "Rating", "ReviewCount", "Category"},
		Rows: [][]string{
			{"1", "p1", "Silky Shampoo", "Acme", "4.5", "100", "hair"},
			{"1", "p2", "Lipstick Red", "Rouge", "4.8", "500", "lips"},
			{"2", "p1", "Silky Shampoo", "Acme", "4.5", "100", "hair"},
			{"2", "p3", "Lip Gloss", "Rouge", "3.0", "5", "lips"},
			{"0", "p4", "Hammer", "Tools", "bad", "1", "tools"},
			{"3", "p5", "", "Nobody", "1", "1", "none"},
		},
	}
}

func newEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	e, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func waitReady(t *testing.T, e *recommend.Engine) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !e.Ready() {
		if time.Now().After(deadline) {
			t.Fatal("engine never became ready")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func serveInBackground(svc *CatalogService) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	return cancel, errCh
}

func TestCatalogService_LoadsAndPublishes(t *testing.T) {
	engine := newEngine(t)
	src := loader.StaticSource{Name: "products", Table: productTable()}
	svc := NewCatalogService(engine, src, nil, CatalogServiceConfig{Schema: catalog.DefaultSchema()}, zerolog.Nop())

	cancel, errCh := serveInBackground(svc)
	waitReady(t, engine)

	snap, err := engine.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	st := snap.Stats()
	if st.Items != 4 {
		t.Errorf("Items = %d, want 4 (deduplicated, empty name skipped)", st.Items)
	}
	if st.Users != 2 {
		t.Errorf("Users = %d, want 2 (user 0 skipped)", st.Users)
	}
	if st.Catalog.InvalidRatings != 1 || st.Catalog.RowsSkipped != 1 || st.Catalog.Duplicates != 1 {
		t.Errorf("Catalog stats = %+v", st.Catalog)
	}

	resp, err := engine.Recommend(context.Background(), recommend.Request{UserID: 1, N: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Strategy != recommend.StrategyCollaborative || len(resp.Items) != 1 || resp.Items[0].Name != "Lip Gloss" {
		t.Errorf("Recommend(user 1) = %s %+v, want collaborative [Lip Gloss]", resp.Strategy, resp.Items)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

func TestCatalogService_SeparateInteractions(t *testing.T) {
	engine := newEngine(t)
	products := productTable()
	products.Columns[0] = "Unused"

	interactions := loader.StaticSource{Table: catalog.RawTable{
		Columns: []string{"ID", "Name", "Rating"},
		Rows: [][]string{
			{"7", "Hammer", "5"},
			{"8", "Hammer", "4"},
			{"8", "Lip Gloss", "2"},
			{"9", "Unknown Product", "5"},
		},
	}}

	svc := NewCatalogService(engine, loader.StaticSource{Table: products}, interactions,
		CatalogServiceConfig{Schema: catalog.DefaultSchema()}, zerolog.Nop())

	cancel, errCh := serveInBackground(svc)
	defer func() { cancel(); <-errCh }()
	waitReady(t, engine)

	snap, _ := engine.Snapshot()
	st := snap.Stats()
	if st.Users != 2 {
		t.Errorf("Users = %d, want 2", st.Users)
	}
	if st.SkippedInteractions != 1 {
		t.Errorf("SkippedInteractions = %d, want 1 (unknown product)", st.SkippedInteractions)
	}
}

func TestCatalogService_NoUserColumn(t *testing.T) {
	engine := newEngine(t)
	table := catalog.RawTable{
		Columns: []string{"Name", "Rating"},
		Rows:    [][]string{{"A", "4"}, {"B", "3"}},
	}
	svc := NewCatalogService(engine, loader.StaticSource{Table: table}, nil,
		CatalogServiceConfig{Schema: catalog.DefaultSchema()}, zerolog.Nop())

	cancel, errCh := serveInBackground(svc)
	defer func() { cancel(); <-errCh }()
	waitReady(t, engine)

	snap, _ := engine.Snapshot()
	if got := snap.Stats().Users; got != 0 {
		t.Errorf("Users = %d, want 0", got)
	}
}

func TestCatalogService_SchemaErrorTerminates(t *testing.T) {
	engine := newEngine(t)
	table := catalog.RawTable{Columns: []string{"Title", "Rating"}, Rows: [][]string{{"A", "4"}}}
	svc := NewCatalogService(engine, loader.StaticSource{Table: table}, nil,
		CatalogServiceConfig{Schema: catalog.DefaultSchema()}, zerolog.Nop())

	err := svc.Serve(context.Background())
	if !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Errorf("Serve() error = %v, want ErrTerminateSupervisorTree", err)
	}
	if !errors.Is(err, catalog.ErrSchema) {
		t.Errorf("Serve() error = %v, want ErrSchema in chain", err)
	}
	if engine.Ready() {
		t.Error("engine ready after schema failure")
	}
}

func TestCatalogService_LoadFailureIsRetryable(t *testing.T) {
	engine := newEngine(t)
	loadErr := errors.New("disk on fire")
	src := &countingSource{err: loadErr}
	svc := NewCatalogService(engine, src, nil, CatalogServiceConfig{}, zerolog.Nop())

	err := svc.Serve(context.Background())
	if !errors.Is(err, loadErr) {
		t.Errorf("Serve() error = %v, want %v", err, loadErr)
	}
	if errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Error("load failure terminates the tree, want restart")
	}
}

func TestCatalogService_IdlesWhenAlreadyPublished(t *testing.T) {
	engine := newEngine(t)
	cat, err := catalog.Normalize(productTable(), catalog.DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	snap, err := engine.Build(context.Background(), cat, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := engine.Publish(snap); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	src := &countingSource{inner: loader.StaticSource{Table: productTable()}}
	svc := NewCatalogService(engine, src, nil, CatalogServiceConfig{}, zerolog.Nop())

	cancel, errCh := serveInBackground(svc)
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-errCh

	if got := src.calls.Load(); got != 0 {
		t.Errorf("source loaded %d times, want 0 after publication", got)
	}
}

func TestCatalogService_UnderSupervisor(t *testing.T) {
	engine := newEngine(t)
	src := &countingSource{err: errors.New("transient")}
	svc := NewCatalogService(engine, src, nil, CatalogServiceConfig{}, zerolog.Nop())

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(250 * time.Millisecond)
	for src.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := src.calls.Load(); got < 2 {
		t.Errorf("source loaded %d times, want restarts", got)
	}

	cancel()
	<-errCh
}

func TestCatalogService_String(t *testing.T) {
	svc := NewCatalogService(newEngine(t), loader.StaticSource{}, nil, CatalogServiceConfig{}, zerolog.Nop())
	if got := svc.String(); got != "catalog-service" {
		t.Errorf("String() = %q, want catalog-service", got)
	}
	if svc.config.LoadTimeout != 5*time.Minute {
		t.Errorf("LoadTimeout = %v, want 5m default", svc.config.LoadTimeout)
	}
}
