// Package drivestore uploads receipt images into Google Drive, one folder
// per month under a configured root, and returns publicly viewable links.
package drivestore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"fjacquet/flatbot/internal/boterror"
	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/logging"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Store is the Drive-backed receipt storage adapter.
type Store struct {
	svc          *drive.Service
	rootFolderID string
	log          logging.Logger
	clock        func() time.Time
}

// New creates a Store rooted at the configured Drive folder.
func New(ctx context.Context, rootFolderID string, log logging.Logger, opts ...option.ClientOption) (*Store, error) {
	if log == nil {
		log = logging.GetLogger()
	}
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, &boterror.AdapterError{Adapter: "drive", Op: "create client", Err: err}
	}
	return &Store{
		svc:          svc,
		rootFolderID: rootFolderID,
		log:          log,
		clock:        time.Now,
	}, nil
}

// SetClock replaces the time source, for tests.
func (s *Store) SetClock(clock func() time.Time) {
	s.clock = clock
}

// UploadReceipt stores the image in the current month's folder, makes it
// readable by anyone with the link, and returns the view URL.
func (s *Store) UploadReceipt(ctx context.Context, data []byte) (string, error) {
	folderID, err := s.ensureMonthFolder(ctx, dateutils.MonthName(s.clock()))
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("receipt-%s.jpg", uuid.NewString())
	file, err := s.svc.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{folderID},
	}).Media(bytes.NewReader(data)).Fields("id", "webViewLink").Context(ctx).Do()
	if err != nil {
		return "", &boterror.AdapterError{Adapter: "drive", Op: "upload receipt", Err: err}
	}

	_, err = s.svc.Permissions.Create(file.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", &boterror.AdapterError{Adapter: "drive", Op: "share receipt", Err: err}
	}

	s.log.Info("Uploaded receipt",
		logging.Field{Key: "file", Value: name},
		logging.Field{Key: logging.FieldFolder, Value: folderID})
	return file.WebViewLink, nil
}

// ensureMonthFolder finds or creates the month-named folder under the root.
func (s *Store) ensureMonthFolder(ctx context.Context, month string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		month, s.rootFolderID, folderMimeType)
	list, err := s.svc.Files.List().Q(query).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", &boterror.AdapterError{Adapter: "drive", Op: "find month folder", Err: err}
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := s.svc.Files.Create(&drive.File{
		Name:     month,
		MimeType: folderMimeType,
		Parents:  []string{s.rootFolderID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", &boterror.AdapterError{Adapter: "drive", Op: "create month folder", Err: err}
	}

	s.log.Info("Created month folder",
		logging.Field{Key: logging.FieldFolder, Value: month})
	return folder.Id, nil
}
