package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"knowmap/internal/ports"
)

const (
	viewerPath = "/article-viewer"
	editorPath = "/content-management"
)

// LaunchFunc hands a URL to whatever displays it
type LaunchFunc func(url string) error

// Navigator implements ports.ArticleNavigator by opening article pages
// in the system browser
type Navigator struct {
	baseURL string
	launch  LaunchFunc
}

// Ensure Navigator implements ArticleNavigator
var _ ports.ArticleNavigator = (*Navigator)(nil)

// NewNavigator creates a navigator for the site at baseURL. A nil launch
// uses the platform opener.
func NewNavigator(baseURL string, launch LaunchFunc) *Navigator {
	if launch == nil {
		launch = OpenURL
	}
	return &Navigator{
		baseURL: strings.TrimRight(baseURL, "/"),
		launch:  launch,
	}
}

// OpenArticle opens the article viewer for articleID
func (n *Navigator) OpenArticle(articleID string) error {
	u, err := n.ArticleURL(articleID)
	if err != nil {
		return err
	}
	return n.launch(u)
}

// EditArticle opens the content editor for articleID
func (n *Navigator) EditArticle(articleID string) error {
	u, err := n.EditURL(articleID)
	if err != nil {
		return err
	}
	return n.launch(u)
}

// ArticleURL returns the viewer link, /article-viewer?id=<id>
func (n *Navigator) ArticleURL(articleID string) (string, error) {
	return n.build(viewerPath, "id", articleID)
}

// EditURL returns the editor link, /content-management?edit=<id>
func (n *Navigator) EditURL(articleID string) (string, error) {
	return n.build(editorPath, "edit", articleID)
}

func (n *Navigator) build(path, key, articleID string) (string, error) {
	if strings.TrimSpace(articleID) == "" {
		return "", fmt.Errorf("article ID is required")
	}
	q := url.Values{}
	q.Set(key, articleID)
	return n.baseURL + path + "?" + q.Encode(), nil
}

// OpenURL opens u with the platform's URL handler
func OpenURL(u string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", u)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", u)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Start()
}
