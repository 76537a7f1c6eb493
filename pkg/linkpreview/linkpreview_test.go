package linkpreview

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want Type
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", TypeYouTube},
		{"https://youtu.be/dQw4w9WgXcQ", TypeYouTube},
		{"https://vimeo.com/76979871", TypeVimeo},
		{"https://twitter.com/user/status/1", TypeTwitter},
		{"https://x.com/user/status/1", TypeTwitter},
		{"https://www.dropbox.com/s/file", TypeGeneric},
		{"https://www.instagram.com/p/Cabc123/", TypeInstagram},
		{"https://www.linkedin.com/in/someone", TypeLinkedIn},
		{"https://medium.com/@me/post", TypeMedium},
		{"https://github.com/the-dev-tools/folio", TypeGitHub},
		{"https://example.com/files/CV.PDF", TypePDF},
		{"https://example.com/track.flac", TypeAudio},
		{"https://play.google.com/store/apps/details?id=x", TypeApp},
		{"https://apps.apple.com/app/id1", TypeApp},
		{"https://example.com", TypeGeneric},
		{"not a url", TypeGeneric},
		{"", TypeGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			require.Equal(t, tt.want, Detect(tt.url))
		})
	}
}

func TestExtractVideo(t *testing.T) {
	t.Parallel()

	v, ok := ExtractVideo("https://www.youtube.com/watch?list=PL1&v=abc_123")
	require.True(t, ok)
	require.Equal(t, Video{ID: "abc_123", Platform: TypeYouTube}, v)

	v, ok = ExtractVideo("https://player.vimeo.com/video/42")
	require.True(t, ok)
	require.Equal(t, Video{ID: "42", Platform: TypeVimeo}, v)

	_, ok = ExtractVideo("https://example.com/watch")
	require.False(t, ok)
}

func TestVideoURLs(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://www.youtube.com/embed/abc", VideoEmbedURL("https://youtu.be/abc"))
	require.Equal(t, "https://img.youtube.com/vi/abc/maxresdefault.jpg", VideoThumbnail("https://youtu.be/abc"))
	require.Equal(t, "https://player.vimeo.com/video/7", VideoEmbedURL("https://vimeo.com/7"))
	require.Equal(t, "https://vumbnail.com/7.jpg", VideoThumbnail("https://vimeo.com/7"))
	require.Empty(t, VideoEmbedURL("https://example.com"))
	require.Empty(t, VideoThumbnail("https://example.com"))
}

func TestInstagramEmbedURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://www.instagram.com/reel/Xy_z-1/embed/", InstagramEmbedURL("https://instagram.com/reel/Xy_z-1/?igsh=1"))
	require.Empty(t, InstagramEmbedURL("https://www.instagram.com/someone/"))
	require.Empty(t, InstagramEmbedURL("https://example.com/p/abc"))
}

func TestCategoryLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Tutorial", CategoryLabel("tutorial"))
	require.Equal(t, "Open Source", CategoryLabel("open_source"))
	require.Equal(t, "Other", CategoryLabel(""))
}

func TestCategoryLabelConcurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	got := make([]string, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = CategoryLabel("open_source tutorial")
		}()
	}
	wg.Wait()
	for _, g := range got {
		require.Equal(t, "Open Source Tutorial", g)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("missing url", func(t *testing.T) {
		p := Generate("", "", "", "")
		require.Equal(t, TypeGeneric, p.Type)
		require.Equal(t, "#", p.OriginalURL)
		require.Equal(t, "Untitled", p.Title)
		require.Equal(t, "other", p.Category)
		require.Equal(t, MediaArticle, p.MediaType)
		require.False(t, p.IsPlayable)
	})

	t.Run("youtube defaults", func(t *testing.T) {
		p := Generate("https://youtu.be/abc", "", "", "tutorial")
		require.Equal(t, "YouTube Video", p.Title)
		require.Equal(t, "Click to watch video", p.Description)
		require.Equal(t, "https://www.youtube.com/embed/abc", p.EmbedURL)
		require.True(t, p.IsPlayable)
		require.Equal(t, MediaVideo, p.MediaType)
		require.Equal(t, "Tutorial", p.CategoryLabel)
	})

	t.Run("explicit title wins", func(t *testing.T) {
		p := Generate("https://github.com/x/y", "My tool", "desc", "tool")
		require.Equal(t, "My tool", p.Title)
		require.Equal(t, "desc", p.Description)
		require.Equal(t, "GitHub", p.Platform)
		require.Equal(t, MediaCode, p.MediaType)
	})

	t.Run("generic host title", func(t *testing.T) {
		p := Generate("https://blog.example.com/post", "", "", "resource")
		require.Equal(t, "Link to blog.example.com", p.Title)
		require.Equal(t, "Click to visit link", p.Description)
	})

	t.Run("audio is playable", func(t *testing.T) {
		p := Generate("https://cdn.example.com/a.mp3", "", "", "")
		require.Equal(t, TypeAudio, p.Type)
		require.True(t, p.IsPlayable)
	})
}
