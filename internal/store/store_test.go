package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// fakeRemote is an in-memory Remote with switchable failure modes.
type fakeRemote struct {
	files     map[string][]byte
	failFetch bool
	failPut   bool
	puts      int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{files: map[string][]byte{}}
}

func (f *fakeRemote) Fetch(_ context.Context, name string) ([]byte, error) {
	if f.failFetch {
		return nil, errors.New("remote down")
	}
	data, ok := f.files[name]
	if !ok {
		return nil, ErrRemoteNotFound
	}
	return data, nil
}

func (f *fakeRemote) Put(_ context.Context, name string, data []byte) error {
	if f.failPut {
		return errors.New("remote down")
	}
	f.files[name] = append([]byte(nil), data...)
	f.puts++
	return nil
}

func sampleTable() Table {
	return Table{
		Header: []string{"id", "date", "type", "category", "amount", "description"},
		Rows: [][]string{
			{"1", "2024-01-01", "income", "Donación", "50", "cuota, enero"},
			{"2", "2024-01-02", "expense", "Otros", "19.99", `libros "usados"`},
		},
	}
}

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir(), nil)

	want := sampleTable()
	if err := s.Save(ctx, "transactions", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx, "transactions")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestLoadMissingIsEmptyDataset(t *testing.T) {
	s := New(t.TempDir(), nil)

	got, err := s.Load(context.Background(), "transactions")
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if !got.Empty() {
		t.Errorf("expected empty table, got %d rows", len(got.Rows))
	}
}

func TestFallbackWhenRemoteAlwaysFails(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.failFetch = true
	remote.failPut = true
	s := New(t.TempDir(), remote)

	want := sampleTable()
	if err := s.Save(ctx, "transactions", want); err != nil {
		t.Fatalf("Save must not fail on remote errors: %v", err)
	}
	if !s.Degraded() {
		t.Error("store should be degraded after a failed remote put")
	}

	got, err := s.Load(ctx, "transactions")
	if err != nil {
		t.Fatalf("Load must not fail on remote errors: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("local fallback round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestRemoteContentWinsAndRefreshesLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// Stale local copy.
	stale := Table{Header: []string{"balance"}, Rows: [][]string{{"1"}}}
	localOnly := New(dir, nil)
	if err := localOnly.Save(ctx, "balance", stale); err != nil {
		t.Fatal(err)
	}

	// Fresher remote copy.
	fresh := Table{Header: []string{"balance"}, Rows: [][]string{{"250.75"}}}
	freshBytes, err := fresh.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	remote := newFakeRemote()
	remote.files["balance.csv"] = freshBytes

	s := New(dir, remote)
	got, err := s.Load(ctx, "balance")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, fresh) {
		t.Errorf("Load = %#v, want remote content %#v", got, fresh)
	}

	onDisk, err := os.ReadFile(filepath.Join(dir, "balance.csv"))
	if err != nil {
		t.Fatalf("reading refreshed local copy: %v", err)
	}
	if !bytes.Equal(onDisk, freshBytes) {
		t.Errorf("local cache not refreshed:\n got %q\nwant %q", onDisk, freshBytes)
	}
}

func TestRemoteNotFoundFallsBackToLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	want := sampleTable()
	if err := New(dir, nil).Save(ctx, "transactions", want); err != nil {
		t.Fatal(err)
	}

	s := New(dir, newFakeRemote())
	got, err := s.Load(ctx, "transactions")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected local content on remote miss, got %#v", got)
	}
}

func TestSaveMirrorsToRemote(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	remote := newFakeRemote()
	s := New(dir, remote)

	if err := s.Save(ctx, "transactions", sampleTable()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Degraded() {
		t.Error("store degraded after successful mirror")
	}

	local, err := os.ReadFile(filepath.Join(dir, "transactions.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(remote.files["transactions.csv"], local) {
		t.Error("remote copy differs from local file")
	}
}

func TestSaveLocalWriteFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	// Use a regular file where the data directory should be so the
	// local write cannot succeed.
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(blocked, nil)
	if err := s.Save(context.Background(), "transactions", sampleTable()); err == nil {
		t.Fatal("expected local write failure to surface")
	}
}

func TestDegradedClearsOnRecovery(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	s := New(t.TempDir(), remote)

	remote.failPut = true
	if err := s.Save(ctx, "balance", sampleTable()); err != nil {
		t.Fatal(err)
	}
	if !s.Degraded() {
		t.Fatal("expected degraded after remote failure")
	}

	remote.failPut = false
	if err := s.Save(ctx, "balance", sampleTable()); err != nil {
		t.Fatal(err)
	}
	if s.Degraded() {
		t.Error("degraded flag should clear after a successful remote call")
	}
}

func TestTableParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("a,b\n\"unterminated")); err == nil {
		t.Error("expected parse error for malformed csv")
	}
}

func TestTableColumn(t *testing.T) {
	tab := sampleTable()
	tests := []struct {
		name string
		want int
	}{
		{"id", 0},
		{"amount", 4},
		{"missing", -1},
	}
	for _, tt := range tests {
		if got := tab.Column(tt.name); got != tt.want {
			t.Errorf("Column(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
