// Package drive talks to the remote file store: folder lookup and
// creation plus simple (non-resumable) file uploads.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Folder is a remote folder reference.
type Folder struct {
	ID   string
	Name string
}

// FileRef is the persisted form of an upload: the remote identifier and a
// shareable view link recorded in the ledger.
type FileRef struct {
	ID       string
	ViewLink string
}

// Client is the storage surface the service layer depends on. The Drive
// implementation below is the only production one; tests substitute an
// in-memory tree.
type Client interface {
	// ListFolders returns the non-trashed folders matching name exactly,
	// restricted to parentID's children when parentID is non-empty.
	ListFolders(ctx context.Context, name, parentID string) ([]Folder, error)

	// CreateFolder creates a folder, with parentID as sole parent when given.
	CreateFolder(ctx context.Context, name, parentID string) (Folder, error)

	// CreateFile uploads data as a new file under parentID.
	CreateFile(ctx context.Context, name, parentID, contentType string, data []byte) (FileRef, error)
}

// DriveClient implements Client against the Drive v3 API.
type DriveClient struct {
	svc *gdrive.Service
}

func NewClient(svc *gdrive.Service) *DriveClient {
	return &DriveClient{svc: svc}
}

func (c *DriveClient) ListFolders(ctx context.Context, name, parentID string) ([]Folder, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false",
		escapeQuery(name), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	res, err := c.svc.Files.List().
		Q(query).
		Spaces("drive").
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	folders := make([]Folder, 0, len(res.Files))
	for _, f := range res.Files {
		folders = append(folders, Folder{ID: f.Id, Name: f.Name})
	}
	return folders, nil
}

func (c *DriveClient) CreateFolder(ctx context.Context, name, parentID string) (Folder, error) {
	meta := &gdrive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	created, err := c.svc.Files.Create(meta).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return Folder{}, err
	}
	return Folder{ID: created.Id, Name: name}, nil
}

func (c *DriveClient) CreateFile(ctx context.Context, name, parentID, contentType string, data []byte) (FileRef, error) {
	meta := &gdrive.File{
		Name:    name,
		Parents: []string{parentID},
	}

	created, err := c.svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return FileRef{}, err
	}
	return FileRef{ID: created.Id, ViewLink: created.WebViewLink}, nil
}

// escapeQuery escapes quotes and backslashes for a Drive query string literal.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
