package content

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/cache"
	"github.com/mintfeed/mintfeed/internal/classify"
	"github.com/mintfeed/mintfeed/internal/errors"
	"github.com/mintfeed/mintfeed/internal/ledger"
	"github.com/mintfeed/mintfeed/internal/logger"
	"github.com/mintfeed/mintfeed/internal/metrics"
	"github.com/mintfeed/mintfeed/internal/models"
)

// Phase marks the observable steps of a create operation, reported through
// the progress callback so callers can surface activity.
type Phase string

const (
	PhaseUploading Phase = "uploading"
	PhaseCreating  Phase = "creating"
	PhaseSuccess   Phase = "success"
	PhaseError     Phase = "error"
)

// ProgressFunc receives phase transitions during Create. May be nil.
type ProgressFunc func(Phase)

func emit(progress ProgressFunc, phase Phase) {
	if progress != nil {
		progress(phase)
	}
}

// Create mints a new profile, post, or reply as one operation: optional
// image pin, metadata assembly, mint, metadata attach, cache invalidation.
//
// An upload failure degrades the result (no image) instead of aborting; a
// mint failure is terminal and surfaces classified. The pipeline performs
// no retries. The returned entity is usable immediately, without waiting
// for the next scan to observe the record.
func (s *Service) Create(ctx context.Context, req CreateRequest, progress ProgressFunc) (models.Entity, error) {
	if err := req.Validate(); err != nil {
		emit(progress, PhaseError)
		return nil, errors.ValidationError(err)
	}
	if s.minter == nil {
		emit(progress, PhaseError)
		return nil, errors.NotConfigured("ledger mint client")
	}
	if s.identity == nil {
		emit(progress, PhaseError)
		return nil, errors.NotConfigured("wallet identity")
	}

	owner := s.identity.Address()

	// One profile per owner is an application-layer rule; the ledger
	// itself would happily mint another.
	if req.Kind == models.KindProfile {
		if existing, err := s.Profile(ctx, owner); err == nil && existing != nil {
			emit(progress, PhaseError)
			return nil, errors.AlreadyExists("profile for " + owner)
		}
	}

	imageURL := s.uploadImage(ctx, req, progress)

	name, description, domainAttrs := describe(req)
	attrs := injectBaseAttributes(domainAttrs, req.Kind, owner, time.Now())

	emit(progress, PhaseCreating)
	mint, err := s.minter.Mint(ctx, s.identity, ledger.MintParams{
		Name:                 name,
		URI:                  "", // attached after metadata upload
		SellerFeeBasisPoints: 0,
		Collection:           s.collection,
		Creators:             []string{owner},
	})
	if err != nil {
		emit(progress, PhaseError)
		metrics.Get().MintsTotal.WithLabelValues(string(req.Kind), "failed").Inc()
		return nil, ledger.ClassifyMintError(err)
	}

	meta := ledger.Metadata{
		Name:        name,
		Symbol:      "SOCIAL",
		Description: description,
		Image:       imageURL,
		Attributes:  attrs,
	}
	uri, err := s.minter.AttachMetadata(ctx, s.identity, mint.ID, meta)
	if err != nil {
		emit(progress, PhaseError)
		metrics.Get().MintsTotal.WithLabelValues(string(req.Kind), "failed").Inc()
		return nil, ledger.ClassifyMintError(err)
	}
	metrics.Get().MintsTotal.WithLabelValues(string(req.Kind), "success").Inc()

	s.invalidateAfterMutation(req.Kind, owner)

	record := ledger.ContentRecord{
		ID:          mint.ID,
		URI:         uri,
		Name:        name,
		Description: description,
		Image:       imageURL,
		Attributes:  attrs,
	}
	entity, ok := classify.Classify(record)
	if !ok {
		// Cannot happen for a kind that passed validation.
		emit(progress, PhaseError)
		return nil, errors.InternalError(fmt.Errorf("minted record %s did not classify", mint.ID))
	}

	logger.Log.Info("Content created",
		zap.String("kind", string(req.Kind)),
		zap.String("id", mint.ID),
		zap.String("owner", owner),
	)
	emit(progress, PhaseSuccess)
	return entity, nil
}

// uploadImage pins the request image if present. Failure is non-terminal:
// the operation continues without an image.
func (s *Service) uploadImage(ctx context.Context, req CreateRequest, progress ProgressFunc) string {
	if len(req.Image) == 0 {
		return ""
	}

	emit(progress, PhaseUploading)
	if s.uploader == nil {
		metrics.Get().UploadsTotal.WithLabelValues("failed").Inc()
		logger.Log.Warn("No uploader configured, creating content without image")
		return ""
	}

	url, err := s.uploader.UploadImage(ctx, req.Image, req.ImageMime)
	if err != nil {
		metrics.Get().UploadsTotal.WithLabelValues("failed").Inc()
		uploadErr := errors.UploadFailed(err)
		logger.Log.Warn("Image upload failed, creating content without image",
			zap.Error(uploadErr),
		)
		return ""
	}
	metrics.Get().UploadsTotal.WithLabelValues("success").Inc()
	return url
}

// describe derives the minted name, description, and the caller-supplied
// domain attributes for a request. Names follow the collection's existing
// convention so new records blend in with previously minted ones.
func describe(req CreateRequest) (name, description string, attrs []ledger.Attribute) {
	switch req.Kind {
	case models.KindProfile:
		name = "Profile #" + req.Username
		description = req.Bio
		attrs = []ledger.Attribute{{TraitType: classify.AttrUsername, Value: req.Username}}
	case models.KindReply:
		name = fmt.Sprintf("Reply #%d", rand.IntN(1_000_000))
		description = req.Content
		attrs = []ledger.Attribute{{TraitType: classify.AttrParentPost, Value: req.ParentPost}}
	default:
		name = fmt.Sprintf("Post #%d", rand.IntN(1_000_000))
		description = req.Content
	}
	return name, description, attrs
}

// injectBaseAttributes adds type, author, and timestamp unless the caller
// already supplied them, preserving all domain attributes.
func injectBaseAttributes(attrs []ledger.Attribute, kind models.ContentKind, owner string, now time.Time) []ledger.Attribute {
	present := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		present[a.TraitType] = true
	}

	base := make([]ledger.Attribute, 0, 3)
	if !present[classify.AttrType] {
		base = append(base, ledger.Attribute{TraitType: classify.AttrType, Value: string(kind)})
	}
	if !present[classify.AttrAuthor] {
		base = append(base, ledger.Attribute{TraitType: classify.AttrAuthor, Value: owner})
	}
	if !present[classify.AttrTimestamp] {
		base = append(base, ledger.Attribute{TraitType: classify.AttrTimestamp, Value: strconv.FormatInt(now.Unix(), 10)})
	}
	return append(base, attrs...)
}

// invalidateAfterMutation drops every cache entry the new record could
// appear in, forcing the next read to re-scan.
func (s *Service) invalidateAfterMutation(kind models.ContentKind, owner string) {
	s.cache.Invalidate(cache.ScanKey(s.collection))
	s.cache.Invalidate(cache.ListPrefix(s.collection))
	if kind == models.KindProfile {
		s.cache.Invalidate(cache.ProfileKey(owner))
	}
}
