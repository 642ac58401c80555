package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"roll-backend/internal/domains/comment/model"
	"roll-backend/internal/domains/comment/repository"
	placemodel "roll-backend/internal/domains/place/model"
	placerepo "roll-backend/internal/domains/place/repository"
	usermodel "roll-backend/internal/domains/user/model"
	userrepo "roll-backend/internal/domains/user/repository"
)

type commentService struct {
	comments repository.CommentRepository
	users    userrepo.UserRepository
	places   placerepo.PlaceRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	users userrepo.UserRepository,
	places placerepo.PlaceRepository,
) ServiceInterface {
	return &commentService{
		comments: comments,
		users:    users,
		places:   places,
	}
}

func (s *commentService) Create(ctx context.Context, req model.CreateCommentRequest) (*model.Comment, error) {
	req.Normalize()

	// Step 1: content
	if req.Content == "" {
		return nil, model.NewContentRequiredError()
	}

	// Step 2: author
	if req.UserEmail == "" {
		return nil, model.NewEmailRequiredError()
	}
	user, err := s.users.GetByEmail(ctx, req.UserEmail)
	if err != nil {
		if errors.Is(err, usermodel.ErrUserNotFound) {
			return nil, model.NewAuthorNotFoundError()
		}
		return nil, err
	}

	// Step 3: place; a malformed id cannot match any place
	if req.PlaceID == "" {
		return nil, model.NewPlaceRequiredError()
	}
	placeID, err := uuid.Parse(req.PlaceID)
	if err != nil {
		return nil, model.NewPlaceNotFoundError()
	}
	if _, err := s.places.GetByID(ctx, placeID); err != nil {
		if errors.Is(err, placemodel.ErrPlaceNotFound) {
			return nil, model.NewPlaceNotFoundError()
		}
		return nil, err
	}

	// Step 4: record
	comment := &model.Comment{
		ID:        uuid.New(),
		Content:   req.Content,
		PlaceID:   placeID,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	log.Debug().
		Str("comment_id", comment.ID.String()).
		Str("place_id", placeID.String()).
		Str("user_id", user.ID.String()).
		Msg("comment created")

	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.comments.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return model.NewCommentNotFoundError()
		}
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return model.NewCommentNotFoundError()
		}
		return err
	}
	return nil
}

func (s *commentService) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*model.Comment, error) {
	if _, err := s.places.GetByID(ctx, placeID); err != nil {
		if errors.Is(err, placemodel.ErrPlaceNotFound) {
			return nil, model.NewPlaceMissingError()
		}
		return nil, err
	}

	return s.comments.ListByPlace(ctx, placeID)
}
