package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/config"
	"compliance-backend/internal/domains/content/model"
	"compliance-backend/internal/domains/content/repository"
	reviewModel "compliance-backend/internal/domains/review/model"
	userRepository "compliance-backend/internal/domains/user/repository"
	"compliance-backend/internal/shared/utils"
	"compliance-backend/pkg/database"
)

type contentService struct {
	contentRepo repository.ContentRepository
	reviews     ReviewTracker
	userRepo    userRepository.UserRepository
	blobs       BlobStore
	cleaner     BlobCleaner
	tx          database.Transactor
	upload      config.UploadConfig
}

func NewContentService(
	contentRepo repository.ContentRepository,
	reviews ReviewTracker,
	userRepo userRepository.UserRepository,
	blobs BlobStore,
	cleaner BlobCleaner,
	tx database.Transactor,
	upload config.UploadConfig,
) ServiceInterface {
	return &contentService{
		contentRepo: contentRepo,
		reviews:     reviews,
		userRepo:    userRepo,
		blobs:       blobs,
		cleaner:     cleaner,
		tx:          tx,
		upload:      upload,
	}
}

// =====================================================
// UPLOAD
// =====================================================

func (s *contentService) UploadContent(ctx context.Context, actorID uuid.UUID, req model.UploadContentRequest) (*model.ContentResponse, error) {
	// Step 1: Field validation on the trimmed title
	req.Normalize()
	if err := req.Validate(s.upload.MaxSize); err != nil {
		return nil, err
	}

	// Step 2: The actor becomes the author, so it must exist
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	// Step 3: Duplicate title check; the unique constraint catches races
	exists, err := s.contentRepo.ExistsByAuthorAndTitle(ctx, actorID, req.Title)
	if err != nil {
		return nil, fmt.Errorf("check duplicate title: %w", err)
	}
	if exists {
		return nil, model.NewDuplicateTitleError()
	}

	// Step 4: Store the file under a generated name
	key := utils.UniqueObjectKey(s.upload.Prefix, req.File.Filename)
	if err := s.blobs.Put(ctx, key, req.File.Reader, req.File.Size, req.File.ContentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	// Step 5: Content row and review items commit together
	now := time.Now().UTC()
	content := &model.Content{
		ID:        uuid.New(),
		Title:     req.Title,
		FileKey:   key,
		AuthorID:  actorID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var seeded int64
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.contentRepo.Create(ctx, content); err != nil {
			return err
		}

		n, err := s.reviews.FanOut(ctx, content.ID)
		if err != nil {
			return fmt.Errorf("seed review items: %w", err)
		}
		seeded = n
		return nil
	})
	if err != nil {
		s.discardBlob(ctx, key)
		if errors.Is(err, model.ErrDuplicateTitle) {
			return nil, model.NewDuplicateTitleError()
		}
		return nil, fmt.Errorf("create content: %w", err)
	}

	log.Info().
		Str("content_id", content.ID.String()).
		Str("author_id", actorID.String()).
		Int64("review_items", seeded).
		Msg("Content uploaded")

	resp := content.ToResponse(s.blobs.URL(key), reviewModel.Aggregate(reviewModel.Counts{Total: int(seeded)}))
	return &resp, nil
}

// =====================================================
// READ
// =====================================================

func (s *contentService) GetContent(ctx context.Context, id uuid.UUID) (*model.ContentResponse, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "get content")
	}
	return s.present(ctx, content)
}

func (s *contentService) ListContents(ctx context.Context) ([]model.ContentResponse, error) {
	contents, err := s.contentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	ids := make([]uuid.UUID, len(contents))
	for i, c := range contents {
		ids[i] = c.ID
	}
	counts, err := s.reviews.CountsByContents(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count review items: %w", err)
	}

	out := make([]model.ContentResponse, 0, len(contents))
	for _, c := range contents {
		out = append(out, c.ToResponse(s.blobs.URL(c.FileKey), reviewModel.Aggregate(counts[c.ID])))
	}
	return out, nil
}

// =====================================================
// UPDATE
// =====================================================

func (s *contentService) UpdateContent(ctx context.Context, actorID, id uuid.UUID, req model.UpdateContentRequest) (*model.ContentResponse, error) {
	// Step 1: Field validation runs before ownership
	req.Normalize()
	if err := req.Validate(s.upload.MaxSize); err != nil {
		return nil, err
	}

	// Step 2: Load and check ownership
	current, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "get content")
	}
	if current.AuthorID != actorID {
		return nil, model.NewNotOwnerError()
	}
	if req.IsEmpty() {
		return s.present(ctx, current)
	}

	// Step 3: Store the replacement file first
	var newKey *string
	if req.File != nil {
		key := utils.UniqueObjectKey(s.upload.Prefix, req.File.Filename)
		if err := s.blobs.Put(ctx, key, req.File.Reader, req.File.Size, req.File.ContentType); err != nil {
			return nil, fmt.Errorf("store file: %w", err)
		}
		newKey = &key
	}

	// Step 4: Lock, recheck and write in one statement
	var updated *model.Content
	var oldKey string
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.contentRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked.AuthorID != actorID {
			return model.NewNotOwnerError()
		}
		oldKey = locked.FileKey

		updated, err = s.contentRepo.Update(ctx, id, req.Title, newKey)
		return err
	})
	if err != nil {
		if newKey != nil {
			s.discardBlob(ctx, *newKey)
		}
		var contentErr *model.ContentError
		switch {
		case errors.As(err, &contentErr):
			return nil, contentErr
		case errors.Is(err, model.ErrDuplicateTitle):
			return nil, model.NewDuplicateTitleError()
		default:
			return nil, wrapNotFound(err, "update content")
		}
	}

	// Step 5: The superseded file goes after commit
	if newKey != nil {
		if err := s.cleaner.ScheduleDeletion(ctx, oldKey); err != nil {
			log.Warn().Err(err).Str("key", oldKey).Msg("Failed to schedule old file deletion")
		}
	}

	log.Info().
		Str("content_id", id.String()).
		Int("version", updated.Version).
		Bool("file_replaced", newKey != nil).
		Msg("Content updated")

	return s.present(ctx, updated)
}

func (s *contentService) present(ctx context.Context, c *model.Content) (*model.ContentResponse, error) {
	counts, err := s.reviews.CountsByContent(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("count review items: %w", err)
	}
	resp := c.ToResponse(s.blobs.URL(c.FileKey), reviewModel.Aggregate(counts))
	return &resp, nil
}

// discardBlob removes a file whose row never committed
func (s *contentService) discardBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to remove orphaned file")
	}
}

func wrapNotFound(err error, op string) error {
	if errors.Is(err, model.ErrContentNotFound) {
		return model.NewContentNotFoundError()
	}
	return fmt.Errorf("%s: %w", op, err)
}
