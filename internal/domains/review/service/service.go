package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/domains/review/model"
	"compliance-backend/internal/domains/review/repository"
	userRepository "compliance-backend/internal/domains/user/repository"
	"compliance-backend/pkg/database"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	contents   ContentChecker
	userRepo   userRepository.UserRepository
	tx         database.Transactor
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	contents ContentChecker,
	userRepo userRepository.UserRepository,
	tx database.Transactor,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		contents:   contents,
		userRepo:   userRepo,
		tx:         tx,
	}
}

func (s *reviewService) ListReviewItems(ctx context.Context, contentID uuid.UUID) ([]model.ReviewItemResponse, error) {
	if err := s.ensureContent(ctx, contentID); err != nil {
		return nil, err
	}

	items, err := s.reviewRepo.ListByContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("list review items: %w", err)
	}

	out := make([]model.ReviewItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, item.ToResponse())
	}
	return out, nil
}

// UpdateReviewItem runs lookup, validation and the write in one transaction.
// The item row is locked so concurrent verdicts serialize.
func (s *reviewService) UpdateReviewItem(
	ctx context.Context,
	actorID, contentID, itemID uuid.UUID,
	req model.UpdateReviewItemRequest,
) (*model.ReviewItemResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	var detail *model.ReviewItemDetail
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureContent(ctx, contentID); err != nil {
			return err
		}

		if _, err := s.reviewRepo.GetForUpdate(ctx, contentID, itemID); err != nil {
			if errors.Is(err, model.ErrReviewItemNotFound) {
				return model.NewReviewItemNotFoundError()
			}
			return fmt.Errorf("lock review item: %w", err)
		}

		if err := req.Validate(); err != nil {
			return err
		}

		if err := s.reviewRepo.UpdateStatus(ctx, itemID, model.Status(*req.Status), actorID); err != nil {
			return fmt.Errorf("update review item: %w", err)
		}

		var err error
		detail, err = s.reviewRepo.GetDetail(ctx, itemID)
		if err != nil {
			return fmt.Errorf("reload review item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("content_id", contentID.String()).
		Str("review_item_id", itemID.String()).
		Str("reviewer_id", actorID.String()).
		Str("status", string(detail.Status)).
		Msg("Review item updated")

	resp := detail.ToResponse()
	return &resp, nil
}

func (s *reviewService) ensureContent(ctx context.Context, contentID uuid.UUID) error {
	exists, err := s.contents.Exists(ctx, contentID)
	if err != nil {
		return fmt.Errorf("check content: %w", err)
	}
	if !exists {
		return model.NewContentNotFoundError()
	}
	return nil
}
