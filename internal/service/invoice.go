package service

import (
	"context"
	"strings"
	"time"

	"github.com/relandlord/invoice-intake/internal/drive"
	"github.com/relandlord/invoice-intake/internal/models"
)

const unknownCity = "Unknown_City"

// Ledger is the spreadsheet surface the service appends one row per
// submission to.
type Ledger interface {
	Append(ctx context.Context, row []string) error
}

type Options struct {
	RootFolder string
	Components []string
	Now        func() time.Time // test hook, defaults to time.Now
}

// InvoiceService runs the single business operation: provision a folder
// chain, fan the attachments out into it, append the summary row.
//
// The whole unit of work either succeeds or reports a failure; side
// effects already performed (folders, uploaded files) are NOT rolled
// back, so a retried submission re-uploads its files under a new ticket.
type InvoiceService struct {
	store      drive.Client
	resolver   *drive.Resolver
	ledger     Ledger
	rootFolder string
	components []string
	now        func() time.Time
}

func NewInvoiceService(store drive.Client, ledger Ledger, opts Options) *InvoiceService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &InvoiceService{
		store:      store,
		resolver:   drive.NewResolver(store),
		ledger:     ledger,
		rootFolder: opts.RootFolder,
		components: opts.Components,
		now:        now,
	}
}

// Components returns the configured cost categories in ledger-column order.
func (s *InvoiceService) Components() []string {
	return s.components
}

// Submit persists one submission. The scalar fields of sub come from the
// form as-is (empty when absent); ticket ID and timestamp are assigned
// here. Returns the ticket ID handed back to the submitter.
func (s *InvoiceService) Submit(ctx context.Context, sub models.Submission, files map[string][]models.Upload) (string, error) {
	now := s.now()
	sub.TicketID = NewTicketID()
	sub.Timestamp = now.Format("02/01/2006 15:04:05")

	city := sub.City
	if city == "" {
		city = unknownCity
	}

	dateFolderID, err := s.resolver.ResolvePath(ctx,
		s.rootFolder,
		city,
		now.Format("January_2006"),
		now.Format("2006-01-02"),
	)
	if err != nil {
		return "", RemoteError("resolve folders", err)
	}

	links := make(map[string][]string, len(s.components))
	for _, comp := range s.components {
		for _, up := range files[comp] {
			name := sub.TicketID + "_" + SanitizeFilename(up.Filename)
			contentType := up.ContentType
			if contentType == "" {
				contentType = detectContentType(up.Filename)
			}

			ref, err := s.store.CreateFile(ctx, name, dateFolderID, contentType, up.Data)
			if err != nil {
				return "", RemoteError("upload "+strings.ToLower(comp)+" file", err)
			}
			links[comp] = append(links[comp], ref.ViewLink)
		}
	}

	// Column order is a contract with the ledger sheet: 8 scalar fields,
	// one link cell per component in configured order, then the timestamp.
	row := make([]string, 0, 8+len(s.components)+1)
	row = append(row,
		sub.TicketID, sub.RentStart, sub.RentEnd,
		sub.Name, sub.Mobile, sub.Email, sub.City, sub.GSTType,
	)
	for _, comp := range s.components {
		row = append(row, strings.Join(links[comp], ", "))
	}
	row = append(row, sub.Timestamp)

	if err := s.ledger.Append(ctx, row); err != nil {
		return "", RemoteError("ledger append", err)
	}

	return sub.TicketID, nil
}
