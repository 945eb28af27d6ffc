package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// UserSummary is the compact user shape used by directory listings and
// connection lists.
type UserSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Company    string `json:"company,omitempty"`
	Course     string `json:"course,omitempty"`
	PictureURL string `json:"picture_url,omitempty"`
}

// ProfileResponse serializes the extended profile attributes.
type ProfileResponse struct {
	Course       string            `json:"course"`
	Branch       string            `json:"branch"`
	Year         int               `json:"year"`
	Phone        string            `json:"phone"`
	Company      string            `json:"company"`
	Designation  string            `json:"designation"`
	Skills       []string          `json:"skills"`
	Achievements string            `json:"achievements"`
	SocialLinks  map[string]string `json:"social_links"`
	PictureURL   string            `json:"picture_url"`
}

// UserDetailResponse is the full public view of a member.
type UserDetailResponse struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	CreatedAt time.Time        `json:"created_at"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
}

// DirectoryListRequest filters directory listings.
type DirectoryListRequest struct {
	Page     int
	PageSize int
	Search   string
}

// DirectoryListResponse wraps a paginated directory page.
type DirectoryListResponse struct {
	Items      []UserSummary  `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// ProfileUpdateRequest carries partial profile updates.
type ProfileUpdateRequest struct {
	Course       *string           `json:"course" validate:"omitempty,max=128"`
	Branch       *string           `json:"branch" validate:"omitempty,max=128"`
	Year         *int              `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Phone        *string           `json:"phone" validate:"omitempty,max=32"`
	Company      *string           `json:"company" validate:"omitempty,max=255"`
	Designation  *string           `json:"designation" validate:"omitempty,max=255"`
	Skills       []string          `json:"skills" validate:"omitempty,dive,min=1,max=64"`
	Achievements *string           `json:"achievements" validate:"omitempty,max=4000"`
	SocialLinks  map[string]string `json:"social_links" validate:"omitempty,dive,keys,min=1,endkeys,url"`
}

// UploadImageResponse returns the stored picture location.
type UploadImageResponse struct {
	PictureURL string `json:"picture_url"`
}

// NewUserSummary maps a user model onto the compact directory shape.
func NewUserSummary(user models.User) UserSummary {
	summary := UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.Profile != nil {
		summary.Company = user.Profile.Company
		summary.Course = user.Profile.Course
		summary.PictureURL = user.Profile.PictureURL
	}
	return summary
}

// NewUserDetailResponse maps a user and its profile onto the public view.
func NewUserDetailResponse(user models.User) UserDetailResponse {
	response := UserDetailResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		response.Profile = newProfileResponse(*user.Profile)
	}
	return response
}

func newProfileResponse(profile models.Profile) *ProfileResponse {
	skills := []string{}
	if len(profile.Skills) > 0 {
		// Skills are stored as a JSON array; a decode failure leaves the list empty.
		_ = json.Unmarshal(profile.Skills, &skills)
	}

	links := map[string]string{}
	for key, value := range profile.SocialLinks {
		if str, ok := value.(string); ok {
			links[key] = str
		}
	}

	return &ProfileResponse{
		Course:       profile.Course,
		Branch:       profile.Branch,
		Year:         profile.Year,
		Phone:        profile.Phone,
		Company:      profile.Company,
		Designation:  profile.Designation,
		Skills:       skills,
		Achievements: profile.Achievements,
		SocialLinks:  links,
		PictureURL:   profile.PictureURL,
	}
}
