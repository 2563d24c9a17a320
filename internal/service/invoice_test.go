package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/relandlord/invoice-intake/internal/drive"
	"github.com/relandlord/invoice-intake/internal/models"
)

// fakeStore is an in-memory stand-in for Drive: a folder tree plus a flat
// record of every uploaded file.
type fakeStore struct {
	folders []drive.Folder
	parents map[string]string
	uploads []fakeUpload
	nextID  int
}

type fakeUpload struct {
	name        string
	parentID    string
	contentType string
	size        int
}

func newFakeStore() *fakeStore {
	return &fakeStore{parents: map[string]string{}}
}

func (s *fakeStore) ListFolders(_ context.Context, name, parentID string) ([]drive.Folder, error) {
	var out []drive.Folder
	for _, f := range s.folders {
		if f.Name == name && s.parents[f.ID] == parentID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateFolder(_ context.Context, name, parentID string) (drive.Folder, error) {
	s.nextID++
	f := drive.Folder{ID: fmt.Sprintf("f%d", s.nextID), Name: name}
	s.folders = append(s.folders, f)
	s.parents[f.ID] = parentID
	return f, nil
}

func (s *fakeStore) CreateFile(_ context.Context, name, parentID, contentType string, data []byte) (drive.FileRef, error) {
	s.nextID++
	s.uploads = append(s.uploads, fakeUpload{name: name, parentID: parentID, contentType: contentType, size: len(data)})
	id := fmt.Sprintf("f%d", s.nextID)
	return drive.FileRef{ID: id, ViewLink: "https://files.example/view/" + id}, nil
}

// folderNames walks parent links from id up to the root.
func (s *fakeStore) folderNames(id string) []string {
	var names []string
	for id != "" {
		for _, f := range s.folders {
			if f.ID == id {
				names = append([]string{f.Name}, names...)
				id = s.parents[f.ID]
				break
			}
		}
	}
	return names
}

type fakeLedger struct {
	rows [][]string
	err  error
}

func (l *fakeLedger) Append(_ context.Context, row []string) error {
	if l.err != nil {
		return l.err
	}
	l.rows = append(l.rows, row)
	return nil
}

var testClock = func() time.Time {
	return time.Date(2024, time.March, 5, 14, 30, 45, 0, time.Local)
}

func newTestService(store *fakeStore, ledger *fakeLedger, components []string) *InvoiceService {
	return NewInvoiceService(store, ledger, Options{
		RootFolder: "Re_Landlord_Invoice",
		Components: components,
		Now:        testClock,
	})
}

func fullSubmission() models.Submission {
	return models.Submission{
		RentStart: "2024-03-01",
		RentEnd:   "2024-03-31",
		Name:      "Asha Kulkarni",
		Mobile:    "9876543210",
		Email:     "asha@example.com",
		City:      "Pune",
		GSTType:   "Registered",
	}
}

func TestSubmitRowLayout(t *testing.T) {
	components := []string{"Rent", "Maintenance", "Water", "Electricity", "Parking"}
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger, components)

	files := map[string][]models.Upload{
		"Rent":  {{Filename: "rent.pdf", ContentType: "application/pdf", Data: []byte("pdf")}},
		"Water": {{Filename: "w1.png", Data: []byte("a")}, {Filename: "w2.png", Data: []byte("b")}},
	}

	ticket, err := svc.Submit(context.Background(), fullSubmission(), files)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(ledger.rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(ledger.rows))
	}

	row := ledger.rows[0]
	if want := 8 + len(components) + 1; len(row) != want {
		t.Fatalf("expected %d columns, got %d", want, len(row))
	}

	scalar := []string{ticket, "2024-03-01", "2024-03-31", "Asha Kulkarni", "9876543210", "asha@example.com", "Pune", "Registered"}
	for i, want := range scalar {
		if row[i] != want {
			t.Errorf("column %d = %q, want %q", i, row[i], want)
		}
	}

	// Rent has one link, Water two joined with ", ", the rest empty.
	if !strings.HasPrefix(row[8], "https://files.example/view/") {
		t.Errorf("rent cell = %q, want a view link", row[8])
	}
	if got := strings.Count(row[10], "https://"); got != 2 || !strings.Contains(row[10], ", ") {
		t.Errorf("water cell = %q, want two links joined with comma-space", row[10])
	}
	for _, i := range []int{9, 11, 12} {
		if row[i] != "" {
			t.Errorf("column %d = %q, want empty", i, row[i])
		}
	}

	if row[len(row)-1] != "05/03/2024 14:30:45" {
		t.Errorf("timestamp = %q, want 05/03/2024 14:30:45", row[len(row)-1])
	}
}

func TestSubmitTicketFormat(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger, []string{"Rent"})

	ticket, err := svc.Submit(context.Background(), fullSubmission(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !regexp.MustCompile(`^TKT-\d{4}$`).MatchString(ticket) {
		t.Fatalf("ticket %q does not match TKT-NNNN", ticket)
	}
}

func TestSubmitFolderChain(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger, []string{"Rent"})

	files := map[string][]models.Upload{
		"Rent": {{Filename: "rent.pdf", Data: []byte("x")}},
	}
	if _, err := svc.Submit(context.Background(), fullSubmission(), files); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(store.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(store.uploads))
	}
	chain := store.folderNames(store.uploads[0].parentID)
	want := []string{"Re_Landlord_Invoice", "Pune", "March_2024", "2024-03-05"}
	if len(chain) != len(want) {
		t.Fatalf("chain %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("chain %v, want %v", chain, want)
		}
	}
}

func TestSubmitEmptyCityUsesSentinel(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger, []string{"Rent"})

	sub := fullSubmission()
	sub.City = ""
	if _, err := svc.Submit(context.Background(), sub, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	found := false
	for _, f := range store.folders {
		if f.Name == "Unknown_City" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Unknown_City folder in chain")
	}
	// The ledger still records the city as submitted, i.e. empty.
	if ledger.rows[0][6] != "" {
		t.Errorf("city column = %q, want empty", ledger.rows[0][6])
	}
}

func TestSubmitReusesExistingFolders(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger, []string{"Rent"})
	ctx := context.Background()

	if _, err := svc.Submit(ctx, fullSubmission(), nil); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	created := len(store.folders)
	if created != 4 {
		t.Fatalf("expected 4 folders after first submit, got %d", created)
	}
	if _, err := svc.Submit(ctx, fullSubmission(), nil); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if len(store.folders) != created {
		t.Fatalf("second submit created folders: %d -> %d", created, len(store.folders))
	}
}

func TestSubmitSanitizesAndPrefixesFilename(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger, []string{"Rent"})

	files := map[string][]models.Upload{
		"Rent": {{Filename: "../../etc/passwd", Data: []byte("x")}},
	}
	ticket, err := svc.Submit(context.Background(), fullSubmission(), files)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	got := store.uploads[0].name
	if want := ticket + "_etc_passwd"; got != want {
		t.Fatalf("stored filename %q, want %q", got, want)
	}
}

func TestSubmitDetectsContentType(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger, []string{"Rent"})

	files := map[string][]models.Upload{
		"Rent": {{Filename: "bill.pdf", Data: []byte("x")}}, // no declared type
	}
	if _, err := svc.Submit(context.Background(), fullSubmission(), files); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := store.uploads[0].contentType; got != "application/pdf" {
		t.Fatalf("content type %q, want application/pdf", got)
	}
}

func TestSubmitLedgerFailureKeepsUploads(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{err: errors.New("append failed")}
	svc := newTestService(store, ledger, []string{"Rent"})

	files := map[string][]models.Upload{
		"Rent": {{Filename: "rent.pdf", Data: []byte("x")}},
	}
	_, err := svc.Submit(context.Background(), fullSubmission(), files)
	if err == nil {
		t.Fatal("expected error from failed append")
	}

	var se *Error
	if !errors.As(err, &se) || se.Kind != KindRemote {
		t.Fatalf("expected tagged remote error, got %v", err)
	}

	// No rollback: folders and uploads from the failed attempt remain.
	if len(ledger.rows) != 0 {
		t.Fatalf("expected no ledger rows, got %d", len(ledger.rows))
	}
	if len(store.uploads) != 1 {
		t.Fatalf("expected uploaded file to remain, got %d", len(store.uploads))
	}
	if len(store.folders) != 4 {
		t.Fatalf("expected folder chain to remain, got %d folders", len(store.folders))
	}
}
