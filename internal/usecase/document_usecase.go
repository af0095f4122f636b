package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/internal/domain/service"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/logger"
)

type DocumentUseCase struct {
	requests      *ServiceRequestUseCase
	requestRepo   repository.ServiceRequestRepository
	clientDocs    repository.ClientDocumentRepository
	serviceDocs   repository.ServiceDocumentRepository
	storage       service.ObjectStorage
	uploadsPrefix string
	deliverables  string
	maxBytes      int64
}

func NewDocumentUseCase(
	requests *ServiceRequestUseCase,
	requestRepo repository.ServiceRequestRepository,
	clientDocs repository.ClientDocumentRepository,
	serviceDocs repository.ServiceDocumentRepository,
	storage service.ObjectStorage,
	uploadsPrefix, deliverablesPrefix string,
	maxBytes int64,
) *DocumentUseCase {
	return &DocumentUseCase{
		requests:      requests,
		requestRepo:   requestRepo,
		clientDocs:    clientDocs,
		serviceDocs:   serviceDocs,
		storage:       storage,
		uploadsPrefix: uploadsPrefix,
		deliverables:  deliverablesPrefix,
		maxBytes:      maxBytes,
	}
}

type UploadInput struct {
	FileName    string
	Size        int64
	ContentType string
	Notes       string
	Body        io.Reader
}

// Download is an open object; the caller closes Body.
type Download struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

func (uc *DocumentUseCase) sizeError() error {
	return errors.BadRequest(fmt.Sprintf("File size must be under %dMB", uc.maxBytes/(1024*1024)), nil)
}

func cleanFileName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimSpace(path.Base(name))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", errors.BadRequest("File name is required", nil)
	}
	return name, nil
}

func (uc *DocumentUseCase) UploadClientDocument(ctx context.Context, uid, requestID string, in UploadInput) (*entity.ClientDocument, error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.UserID != uid {
		return nil, errors.NotFound("Service request", nil)
	}
	if in.Size > uc.maxBytes {
		return nil, uc.sizeError()
	}
	name, err := cleanFileName(in.FileName)
	if err != nil {
		return nil, err
	}

	rel := fmt.Sprintf("%s/%s/%s_%s", uid, requestID, ulid.Make().String(), name)
	info, err := uc.storage.Upload(ctx, uc.uploadsPrefix, rel, io.LimitReader(in.Body, uc.maxBytes+1), in.ContentType, false)
	if err != nil {
		if stderrors.Is(err, service.ErrObjectExists) {
			return nil, errors.Conflict("A file with this name already exists")
		}
		return nil, errors.Internal("Failed to upload document", err)
	}
	if info.Size > uc.maxBytes {
		uc.removeObject(ctx, uc.uploadsPrefix, rel)
		return nil, uc.sizeError()
	}

	doc := &entity.ClientDocument{
		ID:               uuid.New().String(),
		ServiceRequestID: requestID,
		UserID:           uid,
		FileName:         name,
		FilePath:         rel,
		FileSize:         info.Size,
		MimeType:         info.ContentType,
		Notes:            strings.TrimSpace(in.Notes),
		Reviewed:         false,
		CreatedAt:        time.Now(),
	}
	if err := uc.clientDocs.Create(ctx, doc); err != nil {
		uc.removeObject(ctx, uc.uploadsPrefix, rel)
		return nil, err
	}

	logger.Info("Document %s uploaded to request %s", doc.ID, requestID)
	return doc, nil
}

func (uc *DocumentUseCase) removeObject(ctx context.Context, prefix, rel string) {
	if err := uc.storage.Delete(ctx, prefix, rel); err != nil {
		logger.Error("Failed to remove orphaned object %s/%s: %v", prefix, rel, err)
	}
}

// ListClientDocuments returns the caller's own uploads, or every upload when
// the caller is staff.
func (uc *DocumentUseCase) ListClientDocuments(ctx context.Context, uid, requestID string) ([]*entity.ClientDocument, error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.UserID == uid {
		return uc.clientDocs.ListByRequest(ctx, requestID, uid)
	}
	if staff, err := uc.requests.isStaff(ctx, uid); err != nil || !staff {
		return nil, errors.NotFound("Service request", nil)
	}
	return uc.clientDocs.ListByRequest(ctx, requestID, "")
}

func (uc *DocumentUseCase) DeleteClientDocument(ctx context.Context, uid, docID string) error {
	doc, err := uc.clientDocs.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if doc.UserID != uid {
		return errors.NotFound("Document", nil)
	}

	if err := uc.storage.Delete(ctx, uc.uploadsPrefix, doc.FilePath); err != nil {
		return errors.Internal("Failed to delete document", err)
	}
	return uc.clientDocs.Delete(ctx, docID)
}

func (uc *DocumentUseCase) OpenClientDocument(ctx context.Context, uid, docID string) (*Download, error) {
	doc, err := uc.clientDocs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != uid {
		if staff, err := uc.requests.isStaff(ctx, uid); err != nil || !staff {
			return nil, errors.NotFound("Document", nil)
		}
	}

	return uc.open(ctx, uc.uploadsPrefix, doc.FilePath, doc.FileName)
}

func (uc *DocumentUseCase) ReviewClientDocument(ctx context.Context, staffID, docID string) (*entity.ClientDocument, error) {
	doc, err := uc.clientDocs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc.Reviewed = true
	doc.ReviewedBy = staffID
	doc.ReviewedAt = &now
	if err := uc.clientDocs.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// UploadDeliverable replaces the request's deliverable. The object lives
// under the client's folder so re-uploading a file of the same name overwrites it.
func (uc *DocumentUseCase) UploadDeliverable(ctx context.Context, staffID, requestID string, in UploadInput) (*entity.ServiceDocument, error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if in.Size > uc.maxBytes {
		return nil, uc.sizeError()
	}
	name, err := cleanFileName(in.FileName)
	if err != nil {
		return nil, err
	}

	rel := fmt.Sprintf("%s/%s/%s", req.UserID, req.ID, name)
	info, err := uc.storage.Upload(ctx, uc.deliverables, rel, io.LimitReader(in.Body, uc.maxBytes+1), in.ContentType, true)
	if err != nil {
		return nil, errors.Internal("Failed to upload document", err)
	}
	if info.Size > uc.maxBytes {
		uc.removeObject(ctx, uc.deliverables, rel)
		return nil, uc.sizeError()
	}

	doc := &entity.ServiceDocument{
		ID:               req.ID,
		ServiceRequestID: req.ID,
		ClientID:         req.UserID,
		UploadedBy:       staffID,
		FileName:         name,
		FilePath:         rel,
		FileSize:         info.Size,
		MimeType:         info.ContentType,
		CreatedAt:        time.Now(),
	}
	if err := uc.serviceDocs.Upsert(ctx, doc); err != nil {
		return nil, err
	}

	if _, err := uc.requests.SetDeliverable(ctx, req, rel); err != nil {
		return nil, err
	}
	return doc, nil
}

func (uc *DocumentUseCase) OpenDeliverable(ctx context.Context, uid, requestID string) (*Download, error) {
	req, err := uc.requests.Get(ctx, uid, requestID)
	if err != nil {
		return nil, err
	}
	if req.DocumentURL == nil || *req.DocumentURL == "" {
		return nil, errors.NotFound("Deliverable", nil)
	}

	name := path.Base(*req.DocumentURL)
	if doc, err := uc.serviceDocs.GetByRequest(ctx, requestID); err == nil && doc.FilePath == *req.DocumentURL {
		name = doc.FileName
	}
	return uc.open(ctx, uc.deliverables, *req.DocumentURL, name)
}

func (uc *DocumentUseCase) open(ctx context.Context, prefix, rel, name string) (*Download, error) {
	body, info, err := uc.storage.Open(ctx, prefix, rel)
	if err != nil {
		if stderrors.Is(err, service.ErrObjectNotFound) {
			return nil, errors.NotFound("File", err)
		}
		return nil, errors.Internal("Failed to open document", err)
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Download{
		FileName:    name,
		ContentType: contentType,
		Size:        info.Size,
		Body:        body,
	}, nil
}
