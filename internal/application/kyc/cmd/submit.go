package kyccmd

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/domain/kyc"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/i18nx"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

const (
	MaxScanSize = 10 * 1024 * 1024 // 10 MB
)

var tracer = otel.Tracer("redacok/internal/application/kyc/cmd")

var (
	ErrPendingExists   = errorx.NewConflict().WithKey(i18nx.KeyKycPendingExists)
	ErrAlreadyReviewed = errorx.NewAlreadyProcessed().WithKey(i18nx.KeyKycAlreadyReviewed)
)

var allowedScanTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

type ScanFile struct {
	File        io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type Submit struct {
	UserID         user.ID
	DocumentType   kyc.DocumentType
	DocumentNumber string
	Scans          []ScanFile
}

type SubmitHandler struct {
	tracer  trace.Tracer
	repo    Repo
	storage FileStorage
}

type SubmitHandlerArgs struct {
	Tracer  trace.Tracer
	Repo    Repo
	Storage FileStorage
}

func NewSubmitHandler(args SubmitHandlerArgs) *SubmitHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	return &SubmitHandler{
		tracer:  args.Tracer,
		repo:    args.Repo,
		storage: args.Storage,
	}
}

// Handle uploads the document scans and creates a pending review request.
// One pending request per user at a time.
func (h *SubmitHandler) Handle(ctx context.Context, cmd *Submit) (*kyc.Request, error) {
	const op = "kyccmd.SubmitHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "SubmitHandler.Handle", trace.WithAttributes(
		attribute.String("user.id", cmd.UserID.String()),
		attribute.String("kyc.document_type", string(cmd.DocumentType)),
		attribute.Int("kyc.scan_count", len(cmd.Scans)),
	))
	defer span.End()

	_, err := h.repo.GetPendingRequestByUserID(ctx, cmd.UserID)
	if err == nil {
		return nil, ErrPendingExists
	}
	if !errorx.IsNotFound(err) {
		otelx.RecordSpanError(span, err, "failed to check pending request")
		return nil, errorx.Wrap(err, op)
	}

	for _, scan := range cmd.Scans {
		if err := validateScan(scan); err != nil {
			otelx.RecordSpanError(span, err, "invalid document scan")
			return nil, err
		}
	}

	keys := make([]string, 0, len(cmd.Scans))
	for _, scan := range cmd.Scans {
		key := generateScanKey(cmd.UserID, scan.ContentType)
		if err := h.storage.UploadFile(ctx, key, scan.File, scan.ContentType); err != nil {
			otelx.RecordSpanError(span, err, "failed to upload document scan")
			return nil, errorx.Wrap(err, op)
		}
		keys = append(keys, key)
	}
	span.AddEvent("uploaded document scans", trace.WithAttributes(attribute.Int("count", len(keys))))

	req, err := kyc.Submit(kyc.SubmitArgs{
		UserID:         cmd.UserID,
		DocumentType:   cmd.DocumentType,
		DocumentNumber: cmd.DocumentNumber,
		DocumentKeys:   keys,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "invalid kyc submission")
		h.cleanupScans(ctx, keys)
		return nil, err
	}

	if err := h.repo.SaveRequest(ctx, req); err != nil {
		otelx.RecordSpanError(span, err, "failed to save kyc request")
		h.cleanupScans(ctx, keys)
		return nil, errorx.Wrap(err, op)
	}

	return req, nil
}

func (h *SubmitHandler) cleanupScans(ctx context.Context, keys []string) {
	for _, key := range keys {
		_ = h.storage.DeleteFile(ctx, key)
	}
}

func validateScan(scan ScanFile) error {
	if _, ok := allowedScanTypes[scan.ContentType]; !ok {
		return errorx.NewValidationFieldFailed("documents")
	}
	if scan.Size <= 0 || scan.Size > MaxScanSize {
		return errorx.NewValidationFieldFailed("documents")
	}
	return nil
}

func generateScanKey(userID user.ID, contentType string) string {
	ext := allowedScanTypes[contentType]
	return path.Join("kyc", userID.String(), fmt.Sprintf("%s%s", uuid.New(), ext))
}
