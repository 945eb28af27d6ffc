package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

var (
	// ErrForbidden indicates the actor may not modify this profile.
	ErrForbidden = errors.New("not allowed to modify this profile")
	// ErrUnsupportedImage indicates the uploaded file is not an accepted image type.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// FileUploader stores a file and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ProfileService manages profile edits and picture uploads.
type ProfileService interface {
	Update(ctx context.Context, actor Actor, userID uint, req dto.ProfileUpdateRequest) (dto.UserDetailResponse, error)
	UploadPicture(ctx context.Context, actor Actor, userID uint, filename string, data []byte) (dto.UploadImageResponse, error)
}

type profileService struct {
	users     repository.UserRepository
	uploader  FileUploader
	recorder  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProfileService constructs the profile service.
func NewProfileService(users repository.UserRepository, uploader FileUploader, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		users:     users,
		uploader:  uploader,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) Update(ctx context.Context, actor Actor, userID uint, req dto.ProfileUpdateRequest) (dto.UserDetailResponse, error) {
	if err := s.authorize(actor, userID); err != nil {
		return dto.UserDetailResponse{}, err
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.UserDetailResponse{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserDetailResponse{}, ErrUserNotFound
		}
		return dto.UserDetailResponse{}, err
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserDetailResponse{}, err
		}
		profile = models.Profile{UserID: userID}
	}

	applyProfilePatch(&profile, req)

	if err := s.users.SaveProfile(ctx, &profile); err != nil {
		return dto.UserDetailResponse{}, err
	}

	// Admin edits of someone else's profile land in the audit trail.
	if actor.Role == models.RoleAdmin && actor.ID != userID {
		if err := s.recorder.Record(ctx, ActivityEntry{
			Action:    models.ActionUpdate,
			UserID:    actor.ID,
			UserEmail: actor.Email,
			UserRole:  actor.Role,
			Metadata:  map[string]interface{}{"entity": "profile", "target_user_id": userID},
		}); err != nil {
			s.logger.Warn().Err(err).Msg("profile update audit write failed")
		}
	}

	user.Profile = &profile
	return dto.NewUserDetailResponse(user), nil
}

func (s *profileService) UploadPicture(ctx context.Context, actor Actor, userID uint, filename string, data []byte) (dto.UploadImageResponse, error) {
	if err := s.authorize(actor, userID); err != nil {
		return dto.UploadImageResponse{}, err
	}

	if len(data) == 0 {
		return dto.UploadImageResponse{}, ErrUnsupportedImage
	}

	kind := mimetype.Detect(data)
	switch kind.String() {
	case "image/png", "image/jpeg", "image/webp":
	default:
		return dto.UploadImageResponse{}, ErrUnsupportedImage
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UploadImageResponse{}, ErrUserNotFound
		}
		return dto.UploadImageResponse{}, err
	}

	url, err := s.uploader.Upload(ctx, filename, bytes.NewReader(data))
	if err != nil {
		return dto.UploadImageResponse{}, fmt.Errorf("failed to store profile picture: %w", err)
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UploadImageResponse{}, err
		}
		profile = models.Profile{UserID: userID}
	}

	profile.PictureURL = url
	if err := s.users.SaveProfile(ctx, &profile); err != nil {
		return dto.UploadImageResponse{}, err
	}

	return dto.UploadImageResponse{PictureURL: url}, nil
}

func (s *profileService) authorize(actor Actor, userID uint) error {
	if actor.ID == userID || actor.Role == models.RoleAdmin {
		return nil
	}
	return ErrForbidden
}

func applyProfilePatch(profile *models.Profile, req dto.ProfileUpdateRequest) {
	if req.Course != nil {
		profile.Course = *req.Course
	}
	if req.Branch != nil {
		profile.Branch = *req.Branch
	}
	if req.Year != nil {
		profile.Year = *req.Year
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Company != nil {
		profile.Company = *req.Company
	}
	if req.Designation != nil {
		profile.Designation = *req.Designation
	}
	if req.Achievements != nil {
		profile.Achievements = *req.Achievements
	}
	if req.Skills != nil {
		if encoded, err := json.Marshal(req.Skills); err == nil {
			profile.Skills = datatypes.JSON(encoded)
		}
	}
	if req.SocialLinks != nil {
		links := datatypes.JSONMap{}
		for key, value := range req.SocialLinks {
			links[key] = value
		}
		profile.SocialLinks = links
	}
}
