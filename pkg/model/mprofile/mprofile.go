package mprofile

import (
	"time"

	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

// SingletonID is the only id the profile table accepts.
const SingletonID int64 = 1

const DefaultThemeColor = "#3b82f6"

type Profile struct {
	Name                 string    `json:"name"`
	Title                string    `json:"title"`
	Bio                  string    `json:"bio"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	Location             string    `json:"location"`
	CVDownloadURL        string    `json:"cvDownloadUrl"`
	ProfileImageURL      string    `json:"profileImageUrl"`
	ProfileImageHoverURL string    `json:"profileImageHoverUrl"`
	SocialGithub         string    `json:"socialGithub"`
	SocialLinkedin       string    `json:"socialLinkedin"`
	SocialTwitter        string    `json:"socialTwitter"`
	ThemeColor           string    `json:"themeColor"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (p *Profile) Normalize() {
	if p.ThemeColor == "" {
		p.ThemeColor = DefaultThemeColor
	}
}

func (p Profile) Validate() error {
	var c mfield.Checker
	c.Required("name", p.Name)
	c.Required("title", p.Title)
	c.Email("email", p.Email)
	c.URL("cv_download_url", p.CVDownloadURL)
	c.URL("profile_image_url", p.ProfileImageURL)
	c.URL("profile_image_hover_url", p.ProfileImageHoverURL)
	c.URL("social_github", p.SocialGithub)
	c.URL("social_linkedin", p.SocialLinkedin)
	c.URL("social_twitter", p.SocialTwitter)
	c.HexColor("theme_color", p.ThemeColor)
	return c.Err()
}
