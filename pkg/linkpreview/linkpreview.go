// Package linkpreview classifies links attached to portfolio items and derives
// embed and thumbnail URLs for the ones a page can play inline.
package linkpreview

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Type string

const (
	TypeYouTube   Type = "youtube"
	TypeVimeo     Type = "vimeo"
	TypeTwitter   Type = "twitter"
	TypeInstagram Type = "instagram"
	TypeLinkedIn  Type = "linkedin"
	TypeMedium    Type = "medium"
	TypeGitHub    Type = "github"
	TypePDF       Type = "pdf"
	TypeAudio     Type = "audio"
	TypeApp       Type = "app"
	TypeGeneric   Type = "generic"
)

type MediaType string

const (
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
	MediaApp      MediaType = "app"
	MediaSocial   MediaType = "social"
	MediaArticle  MediaType = "article"
	MediaCode     MediaType = "code"
)

type Preview struct {
	Type          Type      `json:"type"`
	OriginalURL   string    `json:"originalUrl"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Image         string    `json:"image,omitempty"`
	EmbedURL      string    `json:"embedUrl,omitempty"`
	Platform      string    `json:"platform,omitempty"`
	IsPlayable    bool      `json:"isPlayable"`
	MediaType     MediaType `json:"mediaType"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"categoryLabel"`
}

type Video struct {
	ID       string
	Platform Type
}

var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
	}
	vimeoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`),
		regexp.MustCompile(`player\.vimeo\.com/video/(\d+)`),
	}
	instagramPost = regexp.MustCompile(`/(p|reel|tv)/([A-Za-z0-9_-]+)`)
	audioExt      = regexp.MustCompile(`\.(mp3|wav|ogg|m4a|aac|flac)$`)
)

// Detect classifies rawURL by host and path. Unparseable input is generic.
func Detect(rawURL string) Type {
	if rawURL == "" {
		return TypeGeneric
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return TypeGeneric
	}
	domain := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)

	switch {
	case strings.Contains(domain, "youtube.com"), strings.Contains(domain, "youtu.be"):
		return TypeYouTube
	case strings.Contains(domain, "vimeo.com"):
		return TypeVimeo
	case strings.Contains(domain, "twitter.com"), domain == "x.com", strings.HasSuffix(domain, ".x.com"):
		return TypeTwitter
	case strings.Contains(domain, "instagram.com"):
		return TypeInstagram
	case strings.Contains(domain, "linkedin.com"):
		return TypeLinkedIn
	case strings.Contains(domain, "medium.com"):
		return TypeMedium
	case strings.Contains(domain, "github.com"):
		return TypeGitHub
	case strings.HasSuffix(path, ".pdf"):
		return TypePDF
	case audioExt.MatchString(path):
		return TypeAudio
	case strings.Contains(domain, "play.google.com"), strings.Contains(domain, "apps.apple.com"), strings.Contains(domain, "microsoft.com"):
		return TypeApp
	}
	return TypeGeneric
}

// ExtractVideo finds a YouTube or Vimeo video id in rawURL.
func ExtractVideo(rawURL string) (Video, bool) {
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return Video{ID: m[1], Platform: TypeYouTube}, true
		}
	}
	for _, p := range vimeoPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return Video{ID: m[1], Platform: TypeVimeo}, true
		}
	}
	return Video{}, false
}

func VideoEmbedURL(rawURL string) string {
	v, ok := ExtractVideo(rawURL)
	if !ok {
		return ""
	}
	if v.Platform == TypeYouTube {
		return "https://www.youtube.com/embed/" + v.ID
	}
	return "https://player.vimeo.com/video/" + v.ID
}

func VideoThumbnail(rawURL string) string {
	v, ok := ExtractVideo(rawURL)
	if !ok {
		return ""
	}
	if v.Platform == TypeYouTube {
		return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", v.ID)
	}
	// vimeo thumbnails need an API call
	return fmt.Sprintf("https://vumbnail.com/%s.jpg", v.ID)
}

// InstagramEmbedURL converts a post, reel or tv link into its embed URL.
func InstagramEmbedURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.Contains(strings.ToLower(u.Hostname()), "instagram.com") {
		return ""
	}
	m := instagramPost.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("https://www.instagram.com/%s/%s/embed/", m[1], m[2])
}

// CategoryLabel turns an item type such as "open_source" into "Open Source".
func CategoryLabel(itemType string) string {
	if itemType == "" {
		itemType = "other"
	}
	// a Caser keeps state between calls, so each call gets its own
	return cases.Title(language.English).String(strings.NewReplacer("_", " ", "-", " ").Replace(itemType))
}

// Generate builds the preview shown for a link. Empty title and description
// fall back to per-platform defaults.
func Generate(rawURL, title, description, itemType string) Preview {
	if itemType == "" {
		itemType = "other"
	}
	if rawURL == "" || rawURL == "#" {
		if title == "" {
			title = "Untitled"
		}
		return Preview{
			Type:          TypeGeneric,
			OriginalURL:   "#",
			Title:         title,
			Description:   description,
			MediaType:     MediaArticle,
			Category:      itemType,
			CategoryLabel: CategoryLabel(itemType),
		}
	}

	t := Detect(rawURL)
	p := Preview{
		Type:          t,
		OriginalURL:   rawURL,
		Title:         title,
		Description:   description,
		Category:      itemType,
		CategoryLabel: CategoryLabel(itemType),
	}
	if p.Title == "" {
		p.Title = defaultTitle(t, rawURL)
	}
	if p.Description == "" {
		p.Description = defaultDescription(t)
	}

	switch t {
	case TypeYouTube, TypeVimeo:
		p.EmbedURL = VideoEmbedURL(rawURL)
		p.Image = VideoThumbnail(rawURL)
		p.IsPlayable = p.EmbedURL != ""
		p.MediaType = MediaVideo
	case TypeTwitter:
		p.MediaType = MediaSocial
		p.Platform = "Twitter/X"
	case TypeInstagram:
		p.EmbedURL = InstagramEmbedURL(rawURL)
		p.IsPlayable = p.EmbedURL != ""
		p.MediaType = MediaSocial
		p.Platform = "Instagram"
	case TypeLinkedIn:
		p.MediaType = MediaSocial
		p.Platform = "LinkedIn"
	case TypeMedium:
		p.MediaType = MediaArticle
		p.Platform = "Medium"
	case TypeGitHub:
		p.MediaType = MediaCode
		p.Platform = "GitHub"
	case TypePDF:
		p.MediaType = MediaDocument
	case TypeAudio:
		p.IsPlayable = true
		p.MediaType = MediaAudio
	case TypeApp:
		p.MediaType = MediaApp
	default:
		p.MediaType = MediaArticle
	}
	return p
}

func defaultTitle(t Type, rawURL string) string {
	switch t {
	case TypeYouTube:
		return "YouTube Video"
	case TypeVimeo:
		return "Vimeo Video"
	case TypeTwitter:
		return "Twitter Post"
	case TypeInstagram:
		return "Instagram Post"
	case TypeLinkedIn:
		return "LinkedIn Post"
	case TypeMedium:
		return "Medium Article"
	case TypeGitHub:
		return "GitHub Repository"
	}
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return "Link to " + u.Hostname()
	}
	return "External Link"
}

func defaultDescription(t Type) string {
	switch t {
	case TypeYouTube, TypeVimeo:
		return "Click to watch video"
	case TypeTwitter:
		return "View post on Twitter/X"
	case TypeInstagram:
		return "View post on Instagram"
	case TypeLinkedIn:
		return "View post on LinkedIn"
	case TypeMedium:
		return "Read article on Medium"
	case TypeGitHub:
		return "View repository on GitHub"
	}
	return "Click to visit link"
}
