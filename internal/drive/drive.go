// Package drive mirrors ledger tables to a Google Drive folder. Files
// are looked up by exact name inside one fixed folder; when several
// files share a name the first match wins.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/rmorpir/ampaconta/internal/config"
	"github.com/rmorpir/ampaconta/internal/store"
)

const requestTimeout = 20 * time.Second

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "drive").Logger()

// Backend implements store.Remote on top of the Drive v3 API.
type Backend struct {
	svc      *drive.Service
	folderID string
}

// New builds a Drive backend from service-account credentials. The
// caller checks creds.Complete() first; an incomplete set here is a
// programming error and fails like any other bad credential.
func New(ctx context.Context, creds config.RemoteCredentials, folderID string) (*Backend, error) {
	keyJSON, err := creds.ServiceAccountJSON()
	if err != nil {
		return nil, fmt.Errorf("drive: building service account key: %w", err)
	}

	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(keyJSON),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive: creating service: %w", err)
	}

	if folderID == "" {
		folderID = "root"
	}
	return &Backend{svc: svc, folderID: folderID}, nil
}

// Fetch downloads the full content of the named file from the folder.
func (b *Backend) Fetch(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	f, err := b.find(ctx, name)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, store.ErrRemoteNotFound
	}

	resp, err := b.svc.Files.Get(f.Id).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("drive: downloading %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("drive: reading %s: %w", name, err)
	}
	return data, nil
}

// Put replaces the named file's content in place, creating the file
// inside the folder when it doesn't exist yet.
func (b *Backend) Put(ctx context.Context, name string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	f, err := b.find(ctx, name)
	if err != nil {
		return err
	}

	if f != nil {
		_, err = b.svc.Files.Update(f.Id, &drive.File{}).
			Media(bytes.NewReader(data)).
			Context(ctx).Do()
		if err != nil {
			logger.Warn().Err(err).Str("file", name).Msg("update failed")
			return fmt.Errorf("drive: updating %s: %w", name, err)
		}
		return nil
	}

	_, err = b.svc.Files.Create(&drive.File{
		Name:     name,
		Parents:  []string{b.folderID},
		MimeType: "text/csv",
	}).Media(bytes.NewReader(data)).Context(ctx).Do()
	if err != nil {
		logger.Warn().Err(err).Str("file", name).Msg("create failed")
		return fmt.Errorf("drive: creating %s: %w", name, err)
	}
	return nil
}

// find looks up the named file inside the folder. Returns nil (no
// error) when absent.
func (b *Backend) find(ctx context.Context, name string) (*drive.File, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		escapeQuery(name), escapeQuery(b.folderID))

	list, err := b.svc.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(10).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("drive: listing %s: %w", name, err)
	}

	if len(list.Files) == 0 {
		return nil, nil
	}
	if len(list.Files) > 1 {
		logger.Warn().Str("file", name).Int("matches", len(list.Files)).
			Msg("multiple files share this name, using first match")
	}
	return list.Files[0], nil
}

// escapeQuery escapes a value for interpolation into a Drive query.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
