// Package drive mirrors approved photos into Google Drive, one folder per
// school under a shared root folder.
package drive

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/schoolshots/photo-intake/internal/core/ports"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Config holds the service account credentials and the root folder.
type Config struct {
	ServiceAccountEmail string
	PrivateKey          []byte
	RootFolderID        string
}

// Mirror implements ports.Mirror on the Drive v3 API.
type Mirror struct {
	files *drive.FilesService
	root  string
	log   zerolog.Logger
}

var _ ports.Mirror = (*Mirror)(nil)

// New authenticates as the service account with the drive.file scope.
// ctx bounds token refreshes for the lifetime of the mirror.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Mirror, error) {
	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: cfg.PrivateKey,
		Scopes:     []string{drive.DriveFileScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}
	return NewWithService(svc, cfg.RootFolderID, log), nil
}

// NewWithService wraps an already configured Drive service.
func NewWithService(svc *drive.Service, rootFolderID string, log zerolog.Logger) *Mirror {
	return &Mirror{files: svc.Files, root: rootFolderID, log: log}
}

// Upload resolves the folder named in.Folder under the root and uploads the
// file into it. When the folder cannot be resolved the file lands in the
// root folder instead. Folder ids are not cached between calls.
func (m *Mirror) Upload(ctx context.Context, in ports.MirrorUpload) (*ports.MirrorResult, error) {
	target := m.root
	if m.root != "" && strings.TrimSpace(in.Folder) != "" {
		id, err := m.resolveFolder(ctx, in.Folder)
		if err != nil {
			m.log.Warn().Err(err).Str("folder", in.Folder).Msg("drive folder unavailable, uploading to root")
		} else {
			target = id
		}
	}

	meta := &drive.File{Name: in.FileName}
	if target != "" {
		meta.Parents = []string{target}
	}

	f, err := m.files.Create(meta).
		Media(in.Body, googleapi.ContentType(in.MimeType)).
		Fields("id", "webViewLink").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive upload %q: %w", in.FileName, err)
	}

	m.log.Debug().Str("file_id", f.Id).Str("folder_id", target).Str("name", in.FileName).Msg("uploaded to drive")
	return &ports.MirrorResult{FileID: f.Id, WebViewLink: f.WebViewLink}, nil
}

// resolveFolder finds a non-trashed folder with exactly this name under the
// root, creating it when none exists.
func (m *Mirror) resolveFolder(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("mimeType='%s' and name='%s' and trashed=false and '%s' in parents",
		folderMimeType, escapeQuery(name), escapeQuery(m.root))

	list, err := m.files.List().
		Q(q).
		Fields("files(id, name)").
		Spaces("drive").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("search folder: %w", err)
	}
	if len(list.Files) > 0 && list.Files[0].Id != "" {
		return list.Files[0].Id, nil
	}

	folder, err := m.files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{m.root},
	}).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	m.log.Info().Str("folder", name).Str("folder_id", folder.Id).Msg("created drive folder")
	return folder.Id, nil
}

// escapeQuery escapes a value for a single-quoted Drive query literal.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
