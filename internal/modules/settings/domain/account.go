package domain

import (
	"net/http"
	"net/mail"
	"slices"
	"strings"

	"storeAdmin/internal/shared/httputil"
	"storeAdmin/internal/shared/normalization"
)

// MaxProfileImageBytes bounds the profile image upload.
const MaxProfileImageBytes = 5 << 20

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// AccountSettings is the admin profile shown on the settings page and in the header.
type AccountSettings struct {
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// NormalizeAccountSettings reads {"data": {...}}. The boolean is false when the payload holds
// no settings object.
func NormalizeAccountSettings(payload any) (AccountSettings, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return AccountSettings{}, false
	}
	return AccountSettings{
		DisplayName:     normalization.AsString(container["display_name"]),
		Email:           normalization.AsString(container["email"]),
		PhoneNumber:     normalization.AsString(container["phone_number"]),
		ProfileImageURL: normalization.AsString(container["profile_image_url"]),
	}, true
}

// Update is the settings form, optionally carrying a new profile image.
type Update struct {
	DisplayName  string               `json:"display_name"`
	Email        string               `json:"email"`
	PhoneNumber  string               `json:"phone_number"`
	ProfileImage *httputil.FileUpload `json:"-"`
}

// HasImage reports whether the update must be sent as multipart.
func (u Update) HasImage() bool {
	return u.ProfileImage != nil && len(u.ProfileImage.Content) > 0
}

// Validate checks the email address and the attached image.
func (u Update) Validate() error {
	errs := httputil.NewValidationError()
	if strings.TrimSpace(u.DisplayName) == "" {
		errs.Add("display_name", "Display name is required")
	}
	if email := strings.TrimSpace(u.Email); email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Email is not valid")
	}
	if u.HasImage() {
		if len(u.ProfileImage.Content) > MaxProfileImageBytes {
			errs.Add("profile_image", "Profile image must be 5MB or smaller")
		}
		contentType := u.ProfileImage.ContentType
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = http.DetectContentType(u.ProfileImage.Content)
		}
		if !slices.Contains(imageTypes, strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))) {
			errs.Add("profile_image", "Profile image must be a JPEG, PNG, GIF or WebP file")
		}
	}
	return errs.OrNil()
}

// Apply returns the settings after the update, keeping the image URL unless the backend
// returned a new one.
func (u Update) Apply(current AccountSettings) AccountSettings {
	current.DisplayName = strings.TrimSpace(u.DisplayName)
	current.Email = strings.TrimSpace(u.Email)
	current.PhoneNumber = strings.TrimSpace(u.PhoneNumber)
	return current
}
